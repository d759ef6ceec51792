package jsoncompat

// Encoder is the subset of json.Encoder used by the handlers.
type Encoder interface {
	Encode(v any) error
}

type Decoder interface {
	Decode(v any) error
}
