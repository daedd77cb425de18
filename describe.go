package schematic

import (
	"encoding"
	"encoding/json"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/reoring/schematic/jsonschema"
	"github.com/reoring/schematic/shape"
)

var (
	timeType          = TypeOf[time.Time]()
	jsonNumberType    = TypeOf[json.Number]()
	textMarshalerType = TypeOf[encoding.TextMarshaler]()
)

// Describe builds the shape descriptor of a Go type from its reflection data,
// struct tags and the Enum/Definer interfaces. Pointers are dereferenced.
// Types reachable from themselves yield cyclic descriptors.
func Describe(t reflect.Type) (shape.Type, error) {
	d := &describer{cache: map[reflect.Type]shape.Type{}}
	if t == nil {
		return nil, d.fail(CodeUnsupportedShape, nil, "nil reflect.Type")
	}
	return d.describe(t)
}

type describer struct {
	cache map[reflect.Type]shape.Type
	path  []string
}

func (d *describer) push(tokens ...string) {
	for _, t := range tokens {
		d.path = append(d.path, jsonschema.EscapePointer(t))
	}
}

func (d *describer) pop(n int) { d.path = d.path[:len(d.path)-n] }

func (d *describer) fail(code string, t reflect.Type, hint string) error {
	p := "/" + strings.Join(d.path, "/")
	name := "<nil>"
	if t != nil {
		name = t.String()
	}
	return Issues{newIssue(p, code, name, hint)}
}

func (d *describer) describe(t reflect.Type) (shape.Type, error) {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if s, ok := d.cache[t]; ok {
		return s, nil
	}
	switch t {
	case timeType:
		return d.store(t, &shape.Primitive{Decl: declOf(t), Of: shape.String, Format: "date-time"}), nil
	case jsonNumberType:
		return d.store(t, &shape.Primitive{Decl: declOf(t), Of: shape.Number}), nil
	}
	if vs, ok := enumVariants(t); ok {
		return d.union(t, vs)
	}

	switch t.Kind() {
	case reflect.Bool:
		return d.store(t, &shape.Primitive{Decl: declOf(t), Of: shape.Boolean}), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64:
		return d.store(t, &shape.Primitive{Decl: declOf(t), Of: shape.Number}), nil
	case reflect.String:
		return d.store(t, &shape.Primitive{Decl: declOf(t), Of: shape.String}), nil
	case reflect.Slice:
		if t.Elem().Kind() == reflect.Uint8 {
			// encoded as base64 text by encoding/json
			return d.store(t, &shape.Primitive{Decl: declOf(t), Of: shape.String}), nil
		}
		return d.sequence(t, -1)
	case reflect.Array:
		return d.sequence(t, t.Len())
	case reflect.Map:
		return d.mapping(t)
	case reflect.Struct:
		return d.object(t)
	case reflect.Interface:
		return nil, d.fail(CodeUnsupportedShape, t, "interface types need a concrete type implementing Enum")
	}
	return nil, d.fail(CodeUnsupportedShape, t, "kind "+t.Kind().String()+" has no JSON representation")
}

func (d *describer) store(t reflect.Type, s shape.Type) shape.Type {
	d.cache[t] = s
	return s
}

// declOf returns the declaration of a named or anonymous type. Types
// implementing Definer are marked for promotion.
func declOf(t reflect.Type) shape.Decl {
	var decl shape.Decl
	if t.Name() != "" {
		decl.Name = t.String()
	}
	if key, ok := definitionKey(t); ok {
		decl.Definition = &shape.Definition{Key: key, Qualified: qualifiedName(t), Owner: t}
	}
	return decl
}

// qualifiedName is "<package path>.<type name>", or empty for anonymous types.
func qualifiedName(t reflect.Type) string {
	if t.Name() == "" {
		return ""
	}
	if t.PkgPath() == "" {
		return t.Name()
	}
	return t.PkgPath() + "." + t.Name()
}

func (d *describer) sequence(t reflect.Type, n int) (shape.Type, error) {
	seq := &shape.Sequence{Decl: declOf(t), Len: n}
	d.store(t, seq)
	d.push("items")
	elem, err := d.describe(t.Elem())
	d.pop(1)
	if err != nil {
		return nil, err
	}
	seq.Elem = elem
	return seq, nil
}

func (d *describer) mapping(t reflect.Type) (shape.Type, error) {
	k := t.Key()
	switch {
	case k.Kind() == reflect.String,
		k.Kind() >= reflect.Int && k.Kind() <= reflect.Uintptr,
		k.Implements(textMarshalerType), reflect.PointerTo(k).Implements(textMarshalerType):
	default:
		return nil, d.fail(CodeUnsupportedShape, t, "map keys must be strings, integers or encoding.TextMarshaler")
	}
	m := &shape.Map{Decl: declOf(t)}
	d.store(t, m)
	d.push("additionalProperties")
	v, err := d.describe(t.Elem())
	d.pop(1)
	if err != nil {
		return nil, err
	}
	m.Value = v
	return m, nil
}

func (d *describer) object(t reflect.Type) (shape.Type, error) {
	ct, err := d.container(t)
	if err != nil {
		return nil, err
	}
	decl := declOf(t)
	if ct.defs {
		decl.Definition = &shape.Definition{Key: ct.key, Qualified: qualifiedName(t), Owner: t}
	}
	if ct.tuple {
		return d.tuple(t, decl)
	}
	obj := &shape.Object{Decl: decl, AdditionalProperties: ct.additional}
	d.store(t, obj)
	fields, err := d.fields(t, ct, map[reflect.Type]bool{t: true})
	if err != nil {
		return nil, err
	}
	obj.Fields = fields
	return obj, nil
}

// container reads the options of a struct's blank field.
func (d *describer) container(t reflect.Type) (containerTag, error) {
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if sf.Name != "_" {
			continue
		}
		raw, ok := sf.Tag.Lookup(TagName)
		if !ok {
			continue
		}
		ct, err := parseContainerTag(raw)
		if err != nil {
			return ct, d.fail(CodeInvalidTag, t, err.Error())
		}
		return ct, nil
	}
	return containerTag{}, nil
}

func (d *describer) tuple(t reflect.Type, decl shape.Decl) (shape.Type, error) {
	tup := &shape.Tuple{Decl: decl}
	d.store(t, tup)
	pos := 0
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if sf.Name == "_" || !sf.IsExported() || sf.Tag.Get(TagName) == "-" {
			continue
		}
		d.push("items", strconv.Itoa(pos))
		it, err := d.describe(sf.Type)
		d.pop(2)
		if err != nil {
			return nil, err
		}
		tup.Items = append(tup.Items, it)
		pos++
	}
	return tup, nil
}

// fields lists the properties of t in declaration order. Embedded structs
// without a JSON name are flattened the way encoding/json does; seen guards
// against embedding cycles.
func (d *describer) fields(t reflect.Type, ct containerTag, seen map[reflect.Type]bool) ([]shape.Field, error) {
	var out []shape.Field
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if sf.Name == "_" {
			continue
		}
		name, skip := jsonName(sf)
		if skip {
			continue
		}
		raw := sf.Tag.Get(TagName)
		if sf.Anonymous && name == "" && raw == "" {
			et := sf.Type
			if et.Kind() == reflect.Pointer {
				et = et.Elem()
			}
			if et.Kind() == reflect.Struct && et != timeType {
				if seen[et] {
					continue
				}
				seen[et] = true
				inner, err := d.fields(et, ct, seen)
				if err != nil {
					return nil, err
				}
				out = append(out, inner...)
				continue
			}
		}
		if !sf.IsExported() {
			continue
		}
		if name == "" {
			name = sf.Name
			if r, ok := renamers[ct.renameAll]; ok {
				name = r(name)
			}
		}
		ft, err := parseFieldTag(raw)
		if err != nil {
			d.push("properties", name)
			err = d.fail(CodeInvalidTag, t, "field "+sf.Name+": "+err.Error())
			d.pop(2)
			return nil, err
		}
		if ft.skip {
			continue
		}
		d.push("properties", name)
		typ, err := d.describe(sf.Type)
		d.pop(2)
		if err != nil {
			return nil, err
		}
		out = append(out, shape.Field{
			Name:        name,
			Meta:        ft.meta,
			Required:    ft.required,
			Constraints: ft.constraints,
			Type:        typ,
		})
	}
	return out, nil
}

// jsonName returns the name from the field's json tag and whether the tag
// excludes the field.
func jsonName(sf reflect.StructField) (string, bool) {
	jt := sf.Tag.Get("json")
	if jt == "-" {
		return "", true
	}
	if i := strings.IndexByte(jt, ','); i >= 0 {
		return jt[:i], false
	}
	return jt, false
}

func (d *describer) union(t reflect.Type, vs []Variant) (shape.Type, error) {
	u := &shape.Union{Decl: declOf(t)}
	d.store(t, u)
	for i, v := range vs {
		d.push("anyOf", strconv.Itoa(i))
		sv, err := d.variant(v)
		d.pop(2)
		if err != nil {
			return nil, err
		}
		u.Variants = append(u.Variants, sv)
	}
	return u, nil
}

func (d *describer) variant(v Variant) (shape.Variant, error) {
	out := shape.Variant{Name: v.name, Kind: v.kind}
	switch v.kind {
	case shape.VariantNewtype, shape.VariantTuple:
		for i, rt := range v.types {
			if rt == nil {
				return out, d.fail(CodeUnsupportedShape, nil, "variant "+strconv.Quote(v.name)+" has a nil payload type")
			}
			if v.kind == shape.VariantTuple {
				d.push("items", strconv.Itoa(i))
			}
			it, err := d.describe(rt)
			if v.kind == shape.VariantTuple {
				d.pop(2)
			}
			if err != nil {
				return out, err
			}
			out.Items = append(out.Items, it)
		}
	case shape.VariantStruct:
		st := v.types[0]
		for st.Kind() == reflect.Pointer {
			st = st.Elem()
		}
		if st.Kind() != reflect.Struct {
			return out, d.fail(CodeUnsupportedShape, st, "struct variant "+strconv.Quote(v.name)+" needs a struct type")
		}
		ct, err := d.container(st)
		if err != nil {
			return out, err
		}
		fields, err := d.fields(st, ct, map[reflect.Type]bool{st: true})
		if err != nil {
			return out, err
		}
		out.Fields, out.AdditionalProperties = fields, ct.additional
	}
	return out, nil
}
