package schematic

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/reoring/schematic/shape"
)

// TagName is the struct tag key read by Describe.
const TagName = "schematic"

type tagItem struct {
	key      string
	value    string
	hasValue bool
}

// splitTag splits a tag body into comma separated key[=value] items. Values
// may be single-quoted to carry commas; inside quotes \' and \\ are the only
// escapes, other backslashes are kept as written.
func splitTag(tag string) ([]tagItem, error) {
	var (
		items []tagItem
		cur   tagItem
		buf   strings.Builder
		inKey = true
	)
	flush := func() error {
		if inKey {
			cur.key = strings.TrimSpace(buf.String())
		} else {
			cur.value = buf.String()
		}
		buf.Reset()
		if cur.key == "" {
			if cur.hasValue || len(items) > 0 {
				return fmt.Errorf("empty key")
			}
			return nil
		}
		items = append(items, cur)
		cur, inKey = tagItem{}, true
		return nil
	}
	for i := 0; i < len(tag); i++ {
		c := tag[i]
		switch {
		case c == ',':
			if err := flush(); err != nil {
				return nil, err
			}
		case c == '=' && inKey:
			cur.key = strings.TrimSpace(buf.String())
			cur.hasValue = true
			buf.Reset()
			inKey = false
		case c == '\'' && !inKey && strings.TrimSpace(buf.String()) == "":
			buf.Reset()
			i++
			for ; i < len(tag) && tag[i] != '\''; i++ {
				if tag[i] == '\\' && i+1 < len(tag) && (tag[i+1] == '\'' || tag[i+1] == '\\') {
					i++
				}
				buf.WriteByte(tag[i])
			}
			if i >= len(tag) {
				return nil, fmt.Errorf("unterminated quote in %q", cur.key)
			}
			// only spaces may follow the closing quote
			for i+1 < len(tag) && tag[i+1] == ' ' {
				i++
			}
			if i+1 < len(tag) && tag[i+1] != ',' {
				return nil, fmt.Errorf("unexpected %q after quoted value of %q", tag[i+1], cur.key)
			}
		default:
			buf.WriteByte(c)
		}
	}
	if err := flush(); err != nil {
		return nil, err
	}
	return items, nil
}

// fieldTag is the parsed form of a field's schematic tag.
type fieldTag struct {
	skip        bool
	meta        *shape.FieldMeta
	required    bool
	constraints shape.Constraints
}

func parseFieldTag(tag string) (fieldTag, error) {
	var ft fieldTag
	if strings.TrimSpace(tag) == "-" {
		ft.skip = true
		return ft, nil
	}
	if tag == "" {
		return ft, nil
	}
	items, err := splitTag(tag)
	if err != nil {
		return ft, err
	}
	ft.meta = &shape.FieldMeta{}
	c := &ft.constraints
	for _, it := range items {
		switch it.key {
		case "title":
			ft.meta.Title = it.value
		case "description":
			d := it.value
			ft.meta.Description = &d
		case "required":
			ft.required, err = flagValue(it)
		case "minLength":
			c.MinLength, err = uintValue(it)
		case "maxLength":
			c.MaxLength, err = uintValue(it)
		case "pattern":
			c.Pattern, err = stringValue(it)
		case "format":
			c.Format, err = stringValue(it)
		case "minimum":
			c.Minimum, err = floatValue(it)
		case "maximum":
			c.Maximum, err = floatValue(it)
		case "multipleOf":
			c.MultipleOf, err = floatValue(it)
			if err == nil && *c.MultipleOf <= 0 {
				err = fmt.Errorf("multipleOf must be positive")
			}
		case "exclusiveMinimum":
			var b bool
			b, err = flagValue(it)
			c.ExclusiveMinimum = &b
		case "exclusiveMaximum":
			var b bool
			b, err = flagValue(it)
			c.ExclusiveMaximum = &b
		case "minItems":
			c.MinItems, err = uintValue(it)
		case "maxItems":
			c.MaxItems, err = uintValue(it)
		default:
			err = fmt.Errorf("unknown key %q", it.key)
		}
		if err != nil {
			return ft, err
		}
	}
	return ft, nil
}

// containerTag holds the options of a struct's blank `_` field.
type containerTag struct {
	defs       bool
	key        string
	additional bool
	renameAll  string
	tuple      bool
}

func parseContainerTag(tag string) (containerTag, error) {
	var ct containerTag
	items, err := splitTag(tag)
	if err != nil {
		return ct, err
	}
	for _, it := range items {
		switch it.key {
		case "defs":
			ct.defs = true
			ct.key = strings.TrimSpace(it.value)
			if it.hasValue && ct.key == "" {
				err = fmt.Errorf("defs needs a non-empty key")
			}
		case "additionalProperties":
			ct.additional, err = flagValue(it)
		case "renameAll":
			ct.renameAll = it.value
			if _, ok := renamers[it.value]; !ok {
				err = fmt.Errorf("unknown renameAll rule %q", it.value)
			}
		case "tuple":
			ct.tuple, err = flagValue(it)
		default:
			err = fmt.Errorf("unknown container key %q", it.key)
		}
		if err != nil {
			return ct, err
		}
	}
	return ct, nil
}

func flagValue(it tagItem) (bool, error) {
	if !it.hasValue {
		return true, nil
	}
	b, err := strconv.ParseBool(strings.TrimSpace(it.value))
	if err != nil {
		return false, fmt.Errorf("%s: %q is not a boolean", it.key, it.value)
	}
	return b, nil
}

func uintValue(it tagItem) (*uint64, error) {
	n, err := strconv.ParseUint(strings.TrimSpace(it.value), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%s: %q is not a non-negative integer", it.key, it.value)
	}
	return &n, nil
}

func floatValue(it tagItem) (*float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(it.value), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, fmt.Errorf("%s: %q is not a finite number", it.key, it.value)
	}
	return &f, nil
}

func stringValue(it tagItem) (*string, error) {
	if !it.hasValue {
		return nil, fmt.Errorf("%s needs a value", it.key)
	}
	s := it.value
	return &s, nil
}
