package intake

import (
	"encoding/json"
)

// Candidate is the interpreted form of a QR payload, proposed to the worker
// for confirmation before it becomes a product. QRContent always carries the
// raw decoded text, whatever the payload looked like.
type Candidate struct {
	Article   string         `json:"article"`
	Name      string         `json:"name"`
	Price     string         `json:"price"`
	QRContent string         `json:"qr_content"`
	Fields    map[string]any `json:"fields,omitempty"`
}

// Interpret turns decoded QR text into a product candidate. A payload that
// parses as a JSON object is passed through verbatim, with the conventional
// article/name/price keys lifted out when present; any other payload is
// treated as an opaque article code.
func Interpret(text string) Candidate {
	c := Candidate{QRContent: text}

	var fields map[string]any
	if err := json.Unmarshal([]byte(text), &fields); err == nil && fields != nil {
		c.Fields = fields
		c.Article = stringField(fields, "article")
		c.Name = stringField(fields, "name")
		c.Price = stringField(fields, "price")
		if c.Price == "" {
			c.Price = "0"
		}
		return c
	}

	// Opaque payload: synthesize a candidate around the raw text
	c.Article = text
	c.Name = "Товар (QR: " + text + ")"
	c.Price = "0"
	return c
}

// stringField renders a JSON value as a string, preserving numeric payloads
// like {"price": 99} without a trailing ".000000"
func stringField(fields map[string]any, key string) string {
	v, ok := fields[key]
	if !ok || v == nil {
		return ""
	}
	switch val := v.(type) {
	case string:
		return val
	default:
		b, err := json.Marshal(val)
		if err != nil {
			return ""
		}
		return string(b)
	}
}
