package jsonschema

// member is one key of a serialized object. Both encoders walk members so
// that JSON and YAML share a single key order.
//
// Value is one of: string, bool, uint64, float64, []string, Node, []Node,
// []member.
type member struct {
	Key   string
	Value any
}

func (s *String) members(Dialect) []member {
	ms := []member{{"type", "string"}}
	if s.MinLength != nil {
		ms = append(ms, member{"minLength", *s.MinLength})
	}
	if s.MaxLength != nil {
		ms = append(ms, member{"maxLength", *s.MaxLength})
	}
	if s.Pattern != nil {
		ms = append(ms, member{"pattern", *s.Pattern})
	}
	if s.Format != nil {
		ms = append(ms, member{"format", *s.Format})
	}
	if len(s.Enum) > 0 {
		ms = append(ms, member{"enum", s.Enum})
	}
	return ms
}

func (n *Number) members(d Dialect) []member {
	ms := []member{{"type", "number"}}
	exMin := n.ExclusiveMinimum != nil && *n.ExclusiveMinimum
	exMax := n.ExclusiveMaximum != nil && *n.ExclusiveMaximum
	if d == Dialect2020 {
		// 2019-09 onwards: exclusive bounds are numbers replacing the inclusive ones.
		if n.Minimum != nil && !exMin {
			ms = append(ms, member{"minimum", *n.Minimum})
		}
		if n.Maximum != nil && !exMax {
			ms = append(ms, member{"maximum", *n.Maximum})
		}
		if n.MultipleOf != nil {
			ms = append(ms, member{"multipleOf", *n.MultipleOf})
		}
		if n.Minimum != nil && exMin {
			ms = append(ms, member{"exclusiveMinimum", *n.Minimum})
		}
		if n.Maximum != nil && exMax {
			ms = append(ms, member{"exclusiveMaximum", *n.Maximum})
		}
		return ms
	}
	if n.Minimum != nil {
		ms = append(ms, member{"minimum", *n.Minimum})
	}
	if n.Maximum != nil {
		ms = append(ms, member{"maximum", *n.Maximum})
	}
	if n.MultipleOf != nil {
		ms = append(ms, member{"multipleOf", *n.MultipleOf})
	}
	if n.ExclusiveMinimum != nil {
		ms = append(ms, member{"exclusiveMinimum", *n.ExclusiveMinimum})
	}
	if n.ExclusiveMaximum != nil {
		ms = append(ms, member{"exclusiveMaximum", *n.ExclusiveMaximum})
	}
	return ms
}

func (*Boolean) members(Dialect) []member { return []member{{"type", "boolean"}} }

func (*Null) members(Dialect) []member { return []member{{"type", "null"}} }

func (a *Array) members(d Dialect) []member {
	ms := []member{{"type", "array"}}
	switch it := a.Items.(type) {
	case List:
		if it.Schema != nil {
			ms = append(ms, member{"items", it.Schema})
		}
	case Tuple:
		if d == Dialect2020 {
			// prefixItems must not be empty
			if len(it) > 0 {
				ms = append(ms, member{"prefixItems", []Node(it)})
			}
		} else {
			ms = append(ms, member{"items", []Node(it)})
		}
	}
	if a.MinItems != nil {
		ms = append(ms, member{"minItems", *a.MinItems})
	}
	if a.MaxItems != nil {
		ms = append(ms, member{"maxItems", *a.MaxItems})
	}
	return ms
}

func (o *Object) members(d Dialect) []member {
	props := []member{}
	if o.Properties != nil {
		for p := o.Properties.Oldest(); p != nil; p = p.Next() {
			props = append(props, member{p.Key, p.Value.members(d)})
		}
	}
	ms := []member{{"type", "object"}, {"properties", props}}
	if len(o.Required) > 0 {
		ms = append(ms, member{"required", o.Required})
	}
	if o.AdditionalProperties.Schema != nil {
		ms = append(ms, member{"additionalProperties", o.AdditionalProperties.Schema})
	} else {
		ms = append(ms, member{"additionalProperties", o.AdditionalProperties.Allowed})
	}
	return ms
}

func (u *AnyOf) members(Dialect) []member {
	vs := u.Variants
	if vs == nil {
		vs = []Node{}
	}
	return []member{{"anyOf", vs}}
}

func (r *Ref) members(Dialect) []member { return []member{{"$ref", r.Pointer()}} }

func (p *Property) members(d Dialect) []member {
	var ms []member
	if p.Title != nil {
		ms = append(ms, member{"title", *p.Title})
	}
	if p.Description != nil {
		ms = append(ms, member{"description", *p.Description})
	}
	if p.Schema != nil {
		ms = append(ms, p.Schema.members(d)...)
	}
	return ms
}
