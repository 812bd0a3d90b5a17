package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilders(t *testing.T) {
	require := require.New(t)
	m := NewModel("shop")
	sales, err := m.AddModule("sales")
	require.NoError(err)
	require.Equal(KindModule, sales.Kind())
	require.Same(m, sales.Parent())

	order, err := sales.AddEntity("Order")
	require.NoError(err)
	require.Same(sales, order.Parent())
	require.Equal("order", order.Label())

	_, err = sales.AddEntity("Order")
	require.ErrorIs(err, ErrDuplicateName)
	require.True(IsDuplicateNameError(err))
	require.EqualError(err, `model: entity "Order" redeclared in "sales"`)

	_, err = sales.AddEntity("   ")
	require.ErrorIs(err, ErrEmptyName)
	require.True(IsEmptyNameError(err))

	// Entity and module names share the sibling namespace.
	_, err = sales.AddModule("Order")
	require.ErrorIs(err, ErrDuplicateName)

	_, err = order.AddAttribute(AttributeDesc{Name: "number", Type: TypeString, Unique: true})
	require.NoError(err)
	_, err = order.AddAttribute(AttributeDesc{Name: "number", Type: TypeInt})
	require.ErrorIs(err, ErrDuplicateName)
	_, err = order.AddAttribute(AttributeDesc{Name: ""})
	require.ErrorIs(err, ErrEmptyName)

	// Attribute and relation namespaces are independent.
	_, err = order.AddRelation(RelationDesc{Name: "number", Rel: M2O, Target: "Customer"})
	require.NoError(err)

	_, err = order.AddFunction(FunctionDesc{Name: "total", Response: "float"})
	require.NoError(err)

	require.NotNil(order.FindAttribute("number"))
	require.Nil(order.FindAttribute("missing"))
}

func TestRemove(t *testing.T) {
	require := require.New(t)
	m := NewModel("shop")
	sales, _ := m.AddModule("sales")
	order, _ := sales.AddEntity("Order")
	order.AddAttribute(AttributeDesc{Name: "number", Type: TypeString})

	err := order.RemoveAttribute("missing")
	require.ErrorIs(err, ErrNotFound)
	require.True(IsNotFoundError(err))

	require.NoError(order.RemoveAttribute("number"))
	require.Empty(order.Attributes)

	require.NoError(sales.Remove("Order"))
	require.Nil(order.Parent(), "removal detaches the parent pointer")
	require.Nil(sales.Find("Order"))
	require.ErrorIs(sales.Remove("Order"), ErrNotFound)

	require.NoError(m.Remove("sales"))
	require.Empty(m.TopModules)
}

func TestAdopt(t *testing.T) {
	require := require.New(t)
	m := NewModel("shop")
	a, _ := m.AddModule("a")
	b, _ := a.AddModule("b")
	c, _ := b.AddModule("c")

	// Adopting an ancestor would make a node its own ancestor.
	err := c.Adopt(a)
	require.ErrorIs(err, ErrOwnAncestor)
	err = c.Adopt(c)
	require.ErrorIs(err, ErrOwnAncestor)

	// A legitimate re-parent moves the subtree.
	other, _ := m.AddModule("other")
	require.NoError(other.Adopt(c))
	require.Same(other, c.Parent())
	require.Nil(b.Find("c"))
	require.Equal("other.c", c.QualifiedName())
}

func TestMetadataStamping(t *testing.T) {
	require := require.New(t)
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	current := base
	now = func() time.Time { return current }
	defer func() { now = time.Now }()

	m := NewModel("shop")
	sales, _ := m.AddModule("sales")
	require.Equal(base, sales.Meta().CreatedAt)
	require.NotEqual("", sales.Meta().ID.String())

	current = base.Add(time.Hour)
	order, _ := sales.AddEntity("Order")
	require.Equal(current, order.Meta().CreatedAt)
	// Mutation touches the whole ancestor chain.
	require.Equal(current, sales.Meta().ModifiedAt)
	require.Equal(current, m.Meta().ModifiedAt)
	require.Equal(base, sales.Meta().CreatedAt)

	current = base.Add(2 * time.Hour)
	_, err := order.AddAttribute(AttributeDesc{Name: "number", Type: TypeString})
	require.NoError(err)
	require.Equal(current, order.Meta().ModifiedAt)
	require.Equal(current, m.Meta().ModifiedAt)
}

func TestStatistics(t *testing.T) {
	m := NewModel("shop")
	sales, _ := m.AddModule("sales")
	nested, _ := sales.AddModule("billing")
	order, _ := sales.AddEntity("Order")
	order.AddAttribute(AttributeDesc{Name: "number", Type: TypeString})
	order.AddAttribute(AttributeDesc{Name: "total", Type: TypeFloat})
	order.AddRelation(RelationDesc{Name: "customer", Rel: M2O, Target: "Customer"})
	order.AddFunction(FunctionDesc{Name: "close"})
	invoice, _ := nested.AddEntity("Invoice")
	invoice.AddAttribute(AttributeDesc{Name: "code", Type: TypeString})
	sales.AddEnum("Status", "OPEN", "CLOSED")
	m.AddAbstractEntity("Auditable")

	s := m.Statistics()
	assert.Equal(t, Statistics{
		Modules:    2,
		Entities:   3,
		Attributes: 3,
		Relations:  1,
		Functions:  1,
		Enums:      1,
	}, s)
}

func TestRecursiveCollection(t *testing.T) {
	require := require.New(t)
	m := NewModel("deep")
	mod, _ := m.AddModule("l0")
	// Deep nesting must not exhaust the stack: the traversals use
	// explicit worklists.
	cur := mod
	for i := 0; i < 5000; i++ {
		next, err := cur.AddModule("n")
		require.NoError(err)
		cur = next
	}
	_, err := cur.AddEntity("Leaf")
	require.NoError(err)

	require.Len(m.Modules(), 5001)
	ents := mod.Entities()
	require.Len(ents, 1)
	require.Equal("Leaf", ents[0].Name)
}

func TestClone(t *testing.T) {
	require := require.New(t)
	m := NewModel("shop")
	m.SetConfig(&Config{Version: "1", Options: map[string]string{"lang": "go"}})
	sales, _ := m.AddModule("sales")
	customer, _ := sales.AddEntity("Customer")
	order, _ := sales.AddEntity("Order")
	order.AddAttribute(AttributeDesc{Name: "number", Type: TypeString})
	order.AddRelation(RelationDesc{Name: "customer", Rel: M2O, Target: "Customer"})
	order.AddRelation(RelationDesc{Name: "parent", Rel: M2O, Target: "Ghost"})
	m.Resolve()

	rel := order.FindRelation("customer")
	require.True(rel.Target.IsResolved())

	c1 := m.Clone()
	c2 := m.Clone()

	// Structure matches.
	require.Equal(m.Statistics(), c1.Statistics())
	cOrder := c1.FindModule("sales").FindEntity("Order")
	require.NotNil(cOrder)

	// Resolved references point inside the clone, not at the source.
	cRel := cOrder.FindRelation("customer")
	require.True(cRel.Target.IsResolved())
	cTarget, _ := cRel.Target.Get()
	require.NotSame(customer, cTarget)
	require.Equal("Customer", cTarget.Name)

	// Unresolved stays unresolved.
	require.False(cOrder.FindRelation("parent").Target.IsResolved())

	// No shared mutable state: mutating one clone affects neither the
	// source nor the other clone.
	cOrder.AddAttribute(AttributeDesc{Name: "extra", Type: TypeInt})
	c1.Config.Options["lang"] = "rust"
	c1.Meta().Tags = append(c1.Meta().Tags, "x")
	require.Len(order.Attributes, 1)
	require.Len(c2.FindModule("sales").FindEntity("Order").Attributes, 1)
	require.Equal("go", m.Config.Options["lang"])
}

func TestModuleStatisticsAndClone(t *testing.T) {
	require := require.New(t)
	m := NewModel("shop")
	sales, _ := m.AddModule("sales")
	billing, _ := sales.AddModule("billing")
	order, _ := sales.AddEntity("Order")
	order.AddAttribute(AttributeDesc{Name: "number", Type: TypeString})
	order.AddRelation(RelationDesc{Name: "customer", Rel: M2O, Target: "Customer"})
	billing.AddEnum("Status", "OPEN")

	require.Equal(Statistics{
		Modules:    1,
		Entities:   1,
		Attributes: 1,
		Relations:  1,
		Enums:      1,
	}, sales.Statistics())

	c := sales.Clone()
	require.Nil(c.Parent())
	require.NotNil(c.FindModule("billing"))
	_, err := c.AddEntity("Extra")
	require.NoError(err)
	require.Len(sales.Elements, 2, "mutating the clone leaves the source alone")

	ce := order.Clone()
	require.Nil(ce.Parent())
	require.False(ce.FindRelation("customer").Target.IsResolved())
	ce.AddAttribute(AttributeDesc{Name: "extra", Type: TypeInt})
	require.Len(order.Attributes, 1)
}

func TestCloneSameNamedEnums(t *testing.T) {
	// Sibling modules each own an enum "Status". The clone must re-link
	// enum references to the counterpart in the same module, matched by
	// path, never to the first "Status" found by name.
	require := require.New(t)
	m := NewModel("shop")
	a, _ := m.AddModule("a")
	a.AddEnum("Status", "A_ONLY")
	b, _ := m.AddModule("b")
	b.AddEnum("Status", "B_ONLY")
	order, _ := b.AddEntity("Order")
	order.AddAttribute(AttributeDesc{Name: "status", Enum: "Status"})
	m.Resolve()

	c := m.Clone()
	en, ok := c.FindModule("b").FindEntity("Order").FindAttribute("status").Enum.Get()
	require.True(ok)
	require.Same(c.FindModule("b").FindEnum("Status"), en)
	require.Equal([]string{"B_ONLY"}, en.Values)
}

func TestKindAndPath(t *testing.T) {
	m := NewModel("shop")
	sales, _ := m.AddModule("sales")
	billing, _ := sales.AddModule("billing")
	inv, _ := billing.AddEntity("Invoice")
	attr, _ := inv.AddAttribute(AttributeDesc{Name: "code", Type: TypeString})

	assert.Equal(t, "shop/sales/billing/Invoice/code", PathOf(attr))
	assert.Equal(t, "sales.billing", billing.QualifiedName())
	assert.Equal(t, KindAttribute, attr.Kind())
	assert.Equal(t, "Invoice", NameOf(inv))

	el := billing.Find("Invoice")
	ent, ok := AsEntity(el)
	assert.True(t, ok)
	assert.Same(t, inv, ent)
	_, ok = AsModule(el)
	assert.False(t, ok)
}

func TestEnum(t *testing.T) {
	m := NewModel("shop")
	sales, _ := m.AddModule("sales")
	status, err := sales.AddEnum("Status", "OPEN")
	require.NoError(t, err)
	status.AddValue("CLOSED")
	status.AddValue("CLOSED") // no-op
	assert.Equal(t, []string{"OPEN", "CLOSED"}, status.Values)
	assert.True(t, status.Has("OPEN"))
	assert.False(t, status.Has("VOID"))
}
