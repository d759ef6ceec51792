package blogs

import "slices"

type Post struct {
	Title    string `json:"title"`
	Author   string `json:"author"`
	Likes    int    `json:"likes"`
	Comments int    `json:"comments"`
}

var popular = []Post{
	{Title: "Exploring the Beauty of Nature", Author: "Aisha", Likes: 278, Comments: 60},
	{Title: "The Power of Minimalist Living", Author: "Sophia", Likes: 150, Comments: 35},
	{Title: "The Future of Web Development", Author: "Emily", Likes: 300, Comments: 70},
	{Title: "Healthy Eating on a Budget", Author: "Chris", Likes: 275, Comments: 58},
	{Title: "Traveling the World as a Digital Nomad", Author: "Taylor", Likes: 340, Comments: 78},
	{Title: "Mindfulness and Mental Health", Author: "Sarah", Likes: 215, Comments: 50},
}

// Popular returns the sidebar posts in display order.
func Popular() []Post {
	return slices.Clone(popular)
}
