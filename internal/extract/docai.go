package extract

import (
	"fmt"

	"github.com/tidwall/gjson"
)

// ParseDocument decodes the Document AI output JSON (one processed shard)
// into the entity stream. Tolerant of unknown fields: only the entity list
// is read, everything else in the payload (pages, layout, images) is
// ignored, mirroring the ignore_unknown_fields decode upstream.
func ParseDocument(data []byte) ([]RawEntity, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("parse document: invalid json")
	}
	doc := gjson.ParseBytes(data)
	ents := doc.Get("entities")
	if !ents.Exists() {
		return nil, nil
	}
	if !ents.IsArray() {
		return nil, fmt.Errorf("parse document: entities is not an array")
	}

	var out []RawEntity
	ents.ForEach(func(_, e gjson.Result) bool {
		out = append(out, parseEntity(e))
		return true
	})
	return out, nil
}

func parseEntity(e gjson.Result) RawEntity {
	ent := RawEntity{
		Type:            e.Get("type").String(),
		MentionText:     e.Get("mentionText").String(),
		NormalizedValue: e.Get("normalizedValue.text").String(),
		Confidence:      e.Get("confidence").Float(),
	}
	props := e.Get("properties")
	if props.IsArray() {
		props.ForEach(func(_, p gjson.Result) bool {
			ent.Properties = append(ent.Properties, parseEntity(p))
			return true
		})
	}
	return ent
}
