package domain

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// MaxAttachmentDepth is the deepest nesting level forwarded to the game server.
// Top level attachments are depth 1.
const MaxAttachmentDepth = 3

type Attachment struct {
	Classname   string      `json:"classname"`
	Quantity    int         `json:"quantity"`
	Attachments Attachments `json:"attachments,omitempty"`
}

type Attachments []Attachment

// ParseAttachments decodes the stored attachment tree leniently. Entries without a classname or
// with a non-positive quantity are dropped, a missing quantity becomes 1, numeric strings are
// accepted, nesting deeper than MaxAttachmentDepth is cut off. Only a top level that is not a
// JSON array is an error.
func ParseAttachments(data []byte) (Attachments, error) {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "" || trimmed == "null" {
		return nil, nil
	}
	var raw []json.RawMessage
	if err := json.Unmarshal([]byte(trimmed), &raw); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidAttachments, err.Error())
	}
	return parseAttachmentLevel(raw, 1), nil
}

type looseAttachment struct {
	Classname   any             `json:"classname"`
	Quantity    any             `json:"quantity"`
	Attachments json.RawMessage `json:"attachments"`
}

func parseAttachmentLevel(raw []json.RawMessage, depth int) Attachments {
	if depth > MaxAttachmentDepth || len(raw) == 0 {
		return nil
	}
	res := make(Attachments, 0, len(raw))
	for _, entry := range raw {
		var la looseAttachment
		if err := json.Unmarshal(entry, &la); err != nil {
			continue
		}
		classname, ok := la.Classname.(string)
		classname = strings.TrimSpace(classname)
		if !ok || classname == "" {
			continue
		}
		qty, ok := coerceQuantity(la.Quantity)
		if !ok {
			continue
		}
		a := Attachment{Classname: classname, Quantity: qty}

		var nested []json.RawMessage
		if len(la.Attachments) > 0 && json.Unmarshal(la.Attachments, &nested) == nil {
			a.Attachments = parseAttachmentLevel(nested, depth+1)
		}
		res = append(res, a)
	}
	if len(res) == 0 {
		return nil
	}
	return res
}

func coerceQuantity(v any) (int, bool) {
	switch q := v.(type) {
	case nil:
		return 1, true
	case float64:
		if math.IsNaN(q) || math.IsInf(q, 0) || q > math.MaxInt32 {
			return 0, false
		}
		n := int(math.Trunc(q))
		return n, n > 0
	case string:
		s := strings.TrimSpace(q)
		if s == "" {
			return 1, true
		}
		if n, err := strconv.Atoi(s); err == nil {
			return n, n > 0
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		return coerceQuantity(f)
	default:
		return 0, false
	}
}

// Normalize returns a copy of the tree without invalid entries and with nesting capped at
// MaxAttachmentDepth.
func (a Attachments) Normalize() Attachments {
	return a.normalize(1)
}

func (a Attachments) normalize(depth int) Attachments {
	if depth > MaxAttachmentDepth || len(a) == 0 {
		return nil
	}
	res := make(Attachments, 0, len(a))
	for _, att := range a {
		classname := strings.TrimSpace(att.Classname)
		if classname == "" || att.Quantity < 1 {
			continue
		}
		res = append(res, Attachment{
			Classname:   classname,
			Quantity:    att.Quantity,
			Attachments: att.Attachments.normalize(depth + 1),
		})
	}
	if len(res) == 0 {
		return nil
	}
	return res
}

// Validate is the strict counterpart of Normalize used on admin writes.
func (a Attachments) Validate() error {
	return a.validate(1)
}

func (a Attachments) validate(depth int) error {
	if len(a) == 0 {
		return nil
	}
	if depth > MaxAttachmentDepth {
		return fmt.Errorf("%w: nesting deeper than %d levels", ErrInvalidAttachments, MaxAttachmentDepth)
	}
	for i, att := range a {
		if !IsValidClassname(att.Classname) {
			return fmt.Errorf("%w: entry %d at depth %d has invalid classname", ErrInvalidAttachments, i, depth)
		}
		if att.Quantity < 1 {
			return fmt.Errorf("%w: entry %d at depth %d has non-positive quantity", ErrInvalidAttachments, i, depth)
		}
		if err := att.Attachments.validate(depth + 1); err != nil {
			return err
		}
	}
	return nil
}
