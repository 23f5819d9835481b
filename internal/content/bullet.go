package content

import (
	"bytes"
	"encoding/json"
)

// Bullet is one node of a research entry's bullet tree. A JSON string
// decodes to a plain bullet; an object decodes to Text plus Children. Any
// other value (null, numbers) decodes to an empty object bullet so that one
// odd entry renders as an empty item instead of failing the page.
type Bullet struct {
	Text     Text
	Children []Bullet
	Plain    bool
}

type bulletObject struct {
	Text     Text     `json:"text"`
	Children []Bullet `json:"children"`
}

func (b *Bullet) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	*b = Bullet{}
	if len(data) == 0 {
		return nil
	}
	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		b.Text = Text(s)
		b.Plain = true
	case '{':
		var obj bulletObject
		if err := json.Unmarshal(data, &obj); err != nil {
			return err
		}
		b.Text = obj.Text
		b.Children = obj.Children
	}
	return nil
}
