package messaging

type ChangeTopic string

const (
	BrowseTopic ChangeTopic = "browse"
)

// Prefix for topics shared by all storefronts.
const GlobalPrefix = "global"
