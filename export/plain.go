package export

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/DaviAlvarenga01/module-doc-lib-sub000/model"
)

// The plain types mirror the live tree one-to-one with all parent
// back-references stripped, so the structure is a value tree encodable
// by any codec without cycle handling. Field tags cover JSON, YAML and
// MessagePack.
type (
	// Model is the plain form of a model root.
	Model struct {
		Name     string     `json:"name" yaml:"name" msgpack:"name"`
		Config   *Config    `json:"config,omitempty" yaml:"config,omitempty" msgpack:"config,omitempty"`
		Modules  []*Module  `json:"modules,omitempty" yaml:"modules,omitempty" msgpack:"modules,omitempty"`
		Abstract []*Element `json:"abstract,omitempty" yaml:"abstract,omitempty" msgpack:"abstract,omitempty"`
		Meta     *Metadata  `json:"meta,omitempty" yaml:"meta,omitempty" msgpack:"meta,omitempty"`
	}

	// Config is the plain form of the model configuration.
	Config struct {
		Version    string            `json:"version,omitempty" yaml:"version,omitempty" msgpack:"version,omitempty"`
		Repository string            `json:"repository,omitempty" yaml:"repository,omitempty" msgpack:"repository,omitempty"`
		Options    map[string]string `json:"options,omitempty" yaml:"options,omitempty" msgpack:"options,omitempty"`
	}

	// Element is a kind-discriminated module child. Exactly one of the
	// payload fields is set, matching Kind.
	Element struct {
		Kind   string  `json:"kind" yaml:"kind" msgpack:"kind"`
		Module *Module `json:"module,omitempty" yaml:"module,omitempty" msgpack:"module,omitempty"`
		Entity *Entity `json:"entity,omitempty" yaml:"entity,omitempty" msgpack:"entity,omitempty"`
		Enum   *Enum   `json:"enum,omitempty" yaml:"enum,omitempty" msgpack:"enum,omitempty"`
	}

	// Module is the plain form of a module.
	Module struct {
		Name     string     `json:"name" yaml:"name" msgpack:"name"`
		Elements []*Element `json:"elements,omitempty" yaml:"elements,omitempty" msgpack:"elements,omitempty"`
		Meta     *Metadata  `json:"meta,omitempty" yaml:"meta,omitempty" msgpack:"meta,omitempty"`
	}

	// Entity is the plain form of a local entity.
	Entity struct {
		Name       string       `json:"name" yaml:"name" msgpack:"name"`
		Abstract   bool         `json:"abstract,omitempty" yaml:"abstract,omitempty" msgpack:"abstract,omitempty"`
		SuperType  *Ref         `json:"super_type,omitempty" yaml:"super_type,omitempty" msgpack:"super_type,omitempty"`
		Attributes []*Attribute `json:"attributes,omitempty" yaml:"attributes,omitempty" msgpack:"attributes,omitempty"`
		Relations  []*Relation  `json:"relations,omitempty" yaml:"relations,omitempty" msgpack:"relations,omitempty"`
		Functions  []*Function  `json:"functions,omitempty" yaml:"functions,omitempty" msgpack:"functions,omitempty"`
		Meta       *Metadata    `json:"meta,omitempty" yaml:"meta,omitempty" msgpack:"meta,omitempty"`
	}

	// Attribute is the plain form of an attribute.
	Attribute struct {
		Name   string    `json:"name" yaml:"name" msgpack:"name"`
		Type   string    `json:"type,omitempty" yaml:"type,omitempty" msgpack:"type,omitempty"`
		Enum   *Ref      `json:"enum,omitempty" yaml:"enum,omitempty" msgpack:"enum,omitempty"`
		Unique bool      `json:"unique,omitempty" yaml:"unique,omitempty" msgpack:"unique,omitempty"`
		Blank  bool      `json:"blank,omitempty" yaml:"blank,omitempty" msgpack:"blank,omitempty"`
		Min    *int      `json:"min,omitempty" yaml:"min,omitempty" msgpack:"min,omitempty"`
		Max    *int      `json:"max,omitempty" yaml:"max,omitempty" msgpack:"max,omitempty"`
		Meta   *Metadata `json:"meta,omitempty" yaml:"meta,omitempty" msgpack:"meta,omitempty"`
	}

	// Relation is the plain form of a relation.
	Relation struct {
		Name      string    `json:"name" yaml:"name" msgpack:"name"`
		Rel       string    `json:"rel" yaml:"rel" msgpack:"rel"`
		Target    *Ref      `json:"target,omitempty" yaml:"target,omitempty" msgpack:"target,omitempty"`
		Opposite  string    `json:"opposite,omitempty" yaml:"opposite,omitempty" msgpack:"opposite,omitempty"`
		Required  bool      `json:"required,omitempty" yaml:"required,omitempty" msgpack:"required,omitempty"`
		Eager     bool      `json:"eager,omitempty" yaml:"eager,omitempty" msgpack:"eager,omitempty"`
		Cascade   bool      `json:"cascade,omitempty" yaml:"cascade,omitempty" msgpack:"cascade,omitempty"`
		JoinTable string    `json:"join_table,omitempty" yaml:"join_table,omitempty" msgpack:"join_table,omitempty"`
		Meta      *Metadata `json:"meta,omitempty" yaml:"meta,omitempty" msgpack:"meta,omitempty"`
	}

	// Function is the plain form of a function.
	Function struct {
		Name     string      `json:"name" yaml:"name" msgpack:"name"`
		Params   []Parameter `json:"params,omitempty" yaml:"params,omitempty" msgpack:"params,omitempty"`
		Response string      `json:"response,omitempty" yaml:"response,omitempty" msgpack:"response,omitempty"`
		Meta     *Metadata   `json:"meta,omitempty" yaml:"meta,omitempty" msgpack:"meta,omitempty"`
	}

	// Parameter is a function parameter.
	Parameter struct {
		Name string `json:"name" yaml:"name" msgpack:"name"`
		Type string `json:"type,omitempty" yaml:"type,omitempty" msgpack:"type,omitempty"`
	}

	// Enum is the plain form of an enum.
	Enum struct {
		Name   string    `json:"name" yaml:"name" msgpack:"name"`
		Values []string  `json:"values,omitempty" yaml:"values,omitempty" msgpack:"values,omitempty"`
		Meta   *Metadata `json:"meta,omitempty" yaml:"meta,omitempty" msgpack:"meta,omitempty"`
	}

	// Ref is the plain form of a reference: the target name plus the
	// resolution state it had when exported.
	Ref struct {
		Name     string `json:"name" yaml:"name" msgpack:"name"`
		Resolved bool   `json:"resolved,omitempty" yaml:"resolved,omitempty" msgpack:"resolved,omitempty"`
	}

	// Metadata is the plain form of node metadata.
	Metadata struct {
		ID          string    `json:"id,omitempty" yaml:"id,omitempty" msgpack:"id,omitempty"`
		Description string    `json:"description,omitempty" yaml:"description,omitempty" msgpack:"description,omitempty"`
		Tags        []string  `json:"tags,omitempty" yaml:"tags,omitempty" msgpack:"tags,omitempty"`
		Author      string    `json:"author,omitempty" yaml:"author,omitempty" msgpack:"author,omitempty"`
		CreatedAt   time.Time `json:"created_at,omitempty" yaml:"created_at,omitempty" msgpack:"created_at,omitempty"`
		ModifiedAt  time.Time `json:"modified_at,omitempty" yaml:"modified_at,omitempty" msgpack:"modified_at,omitempty"`
	}
)

// FromModel converts a live tree to its plain form.
func FromModel(m *model.Model) *Model {
	out := &Model{
		Name: m.Name,
		Meta: fromMeta(m.Meta()),
	}
	if m.Config != nil {
		out.Config = &Config{
			Version:    m.Config.Version,
			Repository: m.Config.Repository,
			Options:    copyOptions(m.Config.Options),
		}
	}
	for _, mod := range m.TopModules {
		out.Modules = append(out.Modules, fromModule(mod))
	}
	for _, el := range m.AbstractElements {
		out.Abstract = append(out.Abstract, fromElement(el))
	}
	return out
}

func fromModule(m *model.Module) *Module {
	out := &Module{Name: m.Name, Meta: fromMeta(m.Meta())}
	for _, el := range m.Elements {
		out.Elements = append(out.Elements, fromElement(el))
	}
	return out
}

func fromElement(el model.Element) *Element {
	switch el := el.(type) {
	case *model.Module:
		return &Element{Kind: "module", Module: fromModule(el)}
	case *model.LocalEntity:
		return &Element{Kind: "entity", Entity: fromEntity(el)}
	case *model.EnumX:
		return &Element{Kind: "enum", Enum: &Enum{
			Name:   el.Name,
			Values: append([]string(nil), el.Values...),
			Meta:   fromMeta(el.Meta()),
		}}
	}
	return nil
}

func fromEntity(e *model.LocalEntity) *Entity {
	out := &Entity{
		Name:      e.Name,
		Abstract:  e.Abstract,
		SuperType: fromRef(e.SuperType),
		Meta:      fromMeta(e.Meta()),
	}
	for _, a := range e.Attributes {
		pa := &Attribute{
			Name:   a.Name,
			Enum:   fromRef(a.Enum),
			Unique: a.Unique,
			Blank:  a.Blank,
			Min:    copyInt(a.Min),
			Max:    copyInt(a.Max),
			Meta:   fromMeta(a.Meta()),
		}
		if !a.IsEnum() {
			pa.Type = a.Type.String()
		}
		out.Attributes = append(out.Attributes, pa)
	}
	for _, r := range e.Relations {
		out.Relations = append(out.Relations, &Relation{
			Name:      r.Name,
			Rel:       r.Rel.String(),
			Target:    fromRef(r.Target),
			Opposite:  r.Opposite,
			Required:  r.Required,
			Eager:     r.Eager,
			Cascade:   r.Cascade,
			JoinTable: r.JoinTable,
			Meta:      fromMeta(r.Meta()),
		})
	}
	for _, f := range e.Functions {
		pf := &Function{Name: f.Name, Response: f.Response, Meta: fromMeta(f.Meta())}
		for _, p := range f.Params {
			pf.Params = append(pf.Params, Parameter{Name: p.Name, Type: p.Type})
		}
		out.Functions = append(out.Functions, pf)
	}
	return out
}

func fromRef[T model.Node](r *model.Reference[T]) *Ref {
	if r == nil {
		return nil
	}
	return &Ref{Name: r.Name(), Resolved: r.IsResolved()}
}

func fromMeta(m *model.Metadata) *Metadata {
	if m == nil {
		return nil
	}
	return &Metadata{
		ID:          m.ID.String(),
		Description: m.Description,
		Tags:        append([]string(nil), m.Tags...),
		Author:      m.Author,
		CreatedAt:   m.CreatedAt,
		ModifiedAt:  m.ModifiedAt,
	}
}

// Build reconstructs a live tree from the plain form. Parent pointers
// are re-established; references marked resolved are re-linked to their
// targets by name, while unresolved references are imported as-is - the
// import never resolves what the export left unresolved.
func (p *Model) Build() (*model.Model, error) {
	m := model.NewModel(p.Name)
	if p.Config != nil {
		m.SetConfig(&model.Config{
			Version:    p.Config.Version,
			Repository: p.Config.Repository,
			Options:    copyOptions(p.Config.Options),
		})
	}
	for _, pm := range p.Modules {
		mod, err := m.AddModule(pm.Name)
		if err != nil {
			return nil, err
		}
		if err := buildModule(mod, pm); err != nil {
			return nil, err
		}
		restoreMeta(mod.Meta(), pm.Meta)
	}
	for _, pel := range p.Abstract {
		switch pel.Kind {
		case "entity":
			if pel.Entity == nil {
				return nil, fmt.Errorf("export: abstract element of kind %q has no payload", pel.Kind)
			}
			ent, err := m.AddAbstractEntity(pel.Entity.Name)
			if err != nil {
				return nil, err
			}
			ent.Abstract = pel.Entity.Abstract
			if err := buildEntity(ent, pel.Entity); err != nil {
				return nil, err
			}
		case "enum":
			if pel.Enum == nil {
				return nil, fmt.Errorf("export: abstract element of kind %q has no payload", pel.Kind)
			}
			en, err := m.AddAbstractEnum(pel.Enum.Name, pel.Enum.Values...)
			if err != nil {
				return nil, err
			}
			restoreMeta(en.Meta(), pel.Enum.Meta)
		default:
			return nil, fmt.Errorf("export: unsupported abstract element kind %q", pel.Kind)
		}
	}
	relinkResolved(m, p)
	restoreMeta(m.Meta(), p.Meta)
	return m, nil
}

func buildModule(mod *model.Module, pm *Module) error {
	for _, pel := range pm.Elements {
		switch pel.Kind {
		case "module":
			if pel.Module == nil {
				return fmt.Errorf("export: element of kind %q has no payload", pel.Kind)
			}
			sub, err := mod.AddModule(pel.Module.Name)
			if err != nil {
				return err
			}
			if err := buildModule(sub, pel.Module); err != nil {
				return err
			}
			restoreMeta(sub.Meta(), pel.Module.Meta)
		case "entity":
			if pel.Entity == nil {
				return fmt.Errorf("export: element of kind %q has no payload", pel.Kind)
			}
			ent, err := mod.AddEntity(pel.Entity.Name)
			if err != nil {
				return err
			}
			ent.Abstract = pel.Entity.Abstract
			if err := buildEntity(ent, pel.Entity); err != nil {
				return err
			}
		case "enum":
			if pel.Enum == nil {
				return fmt.Errorf("export: element of kind %q has no payload", pel.Kind)
			}
			en, err := mod.AddEnum(pel.Enum.Name, pel.Enum.Values...)
			if err != nil {
				return err
			}
			restoreMeta(en.Meta(), pel.Enum.Meta)
		default:
			return fmt.Errorf("export: unsupported element kind %q", pel.Kind)
		}
	}
	return nil
}

func buildEntity(ent *model.LocalEntity, pe *Entity) error {
	if pe.SuperType != nil {
		ent.SetSuperType(pe.SuperType.Name)
	}
	for _, pa := range pe.Attributes {
		desc := model.AttributeDesc{
			Name:   pa.Name,
			Unique: pa.Unique,
			Blank:  pa.Blank,
			Min:    copyInt(pa.Min),
			Max:    copyInt(pa.Max),
		}
		if pa.Enum != nil {
			desc.Enum = pa.Enum.Name
		} else {
			t, err := model.ParseDataType(pa.Type)
			if err != nil {
				return err
			}
			desc.Type = t
		}
		a, err := ent.AddAttribute(desc)
		if err != nil {
			return err
		}
		restoreMeta(a.Meta(), pa.Meta)
	}
	for _, pr := range pe.Relations {
		rel, err := model.ParseRel(pr.Rel)
		if err != nil {
			return err
		}
		target := ""
		if pr.Target != nil {
			target = pr.Target.Name
		}
		r, err := ent.AddRelation(model.RelationDesc{
			Name:      pr.Name,
			Rel:       rel,
			Target:    target,
			Opposite:  pr.Opposite,
			Required:  pr.Required,
			Eager:     pr.Eager,
			Cascade:   pr.Cascade,
			JoinTable: pr.JoinTable,
		})
		if err != nil {
			return err
		}
		restoreMeta(r.Meta(), pr.Meta)
	}
	for _, pf := range pe.Functions {
		params := make([]model.Parameter, 0, len(pf.Params))
		for _, p := range pf.Params {
			params = append(params, model.Parameter{Name: p.Name, Type: p.Type})
		}
		f, err := ent.AddFunction(model.FunctionDesc{Name: pf.Name, Params: params, Response: pf.Response})
		if err != nil {
			return err
		}
		restoreMeta(f.Meta(), pf.Meta)
	}
	restoreMeta(ent.Meta(), pe.Meta)
	return nil
}

// relinkResolved walks the plain and live trees side by side and
// resolves exactly the references the export recorded as resolved.
func relinkResolved(m *model.Model, p *Model) {
	plainEnts := collectPlainEntities(p)
	liveEnts := m.Entities()
	if len(plainEnts) != len(liveEnts) {
		return
	}
	byName := make(map[string]*model.LocalEntity, len(liveEnts))
	for _, ent := range liveEnts {
		if _, ok := byName[ent.Name]; !ok {
			byName[ent.Name] = ent
		}
	}
	enumByName := make(map[string]*model.EnumX)
	for _, en := range m.Enums() {
		if _, ok := enumByName[en.Name]; !ok {
			enumByName[en.Name] = en
		}
	}
	for i, pe := range plainEnts {
		live := liveEnts[i]
		if pe.SuperType != nil && pe.SuperType.Resolved {
			if target := lookupEntity(live, pe.SuperType.Name, byName); target != nil {
				live.SuperType.Resolve(target)
			}
		}
		for j, pr := range pe.Relations {
			if pr.Target != nil && pr.Target.Resolved {
				if target := lookupEntity(live, pr.Target.Name, byName); target != nil {
					live.Relations[j].Target.Resolve(target)
				}
			}
		}
		for j, pa := range pe.Attributes {
			if pa.Enum != nil && pa.Enum.Resolved {
				if target := lookupEnum(live, pa.Enum.Name, enumByName); target != nil {
					live.Attributes[j].Enum.Resolve(target)
				}
			}
		}
	}
}

// lookupEntity prefers a sibling in the owning entity's module over the
// global table, the same rule model.Model.Resolve applies. Without it a
// round-trip could retarget a reference when two entities share a name
// in different modules.
func lookupEntity(from *model.LocalEntity, name string, byName map[string]*model.LocalEntity) *model.LocalEntity {
	if mod := from.Module(); mod != nil {
		if sib := mod.FindEntity(name); sib != nil {
			return sib
		}
	}
	return byName[name]
}

// lookupEnum prefers a sibling in the owning entity's module over the
// global table.
func lookupEnum(from *model.LocalEntity, name string, enumByName map[string]*model.EnumX) *model.EnumX {
	if mod := from.Module(); mod != nil {
		if sib := mod.FindEnum(name); sib != nil {
			return sib
		}
	}
	return enumByName[name]
}

// collectPlainEntities returns the plain entities in the same order
// Model.Entities walks the live tree: abstract first, then per top
// module in breadth-first element order.
func collectPlainEntities(p *Model) []*Entity {
	var out []*Entity
	for _, el := range p.Abstract {
		if el.Kind == "entity" && el.Entity != nil {
			out = append(out, el.Entity)
		}
	}
	for _, mod := range p.Modules {
		queue := []*Module{mod}
		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]
			for _, el := range cur.Elements {
				switch el.Kind {
				case "entity":
					if el.Entity != nil {
						out = append(out, el.Entity)
					}
				case "module":
					if el.Module != nil {
						queue = append(queue, el.Module)
					}
				}
			}
		}
	}
	return out
}

// restoreMeta copies exported metadata back onto a freshly built node,
// preserving the original identifiers and timestamps.
func restoreMeta(dst *model.Metadata, src *Metadata) {
	if dst == nil || src == nil {
		return
	}
	if id, err := uuid.Parse(src.ID); err == nil {
		dst.ID = id
	}
	dst.Description = src.Description
	dst.Tags = append([]string(nil), src.Tags...)
	dst.Author = src.Author
	if !src.CreatedAt.IsZero() {
		dst.CreatedAt = src.CreatedAt
	}
	if !src.ModifiedAt.IsZero() {
		dst.ModifiedAt = src.ModifiedAt
	}
}

func copyOptions(opts map[string]string) map[string]string {
	if opts == nil {
		return nil
	}
	out := make(map[string]string, len(opts))
	for k, v := range opts {
		out[k] = v
	}
	return out
}

func copyInt(v *int) *int {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
