package ownership

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DaviAlvarenga01/module-doc-lib-sub000/model"
)

func twoEntities(t *testing.T) (*model.Model, *model.LocalEntity, *model.LocalEntity) {
	t.Helper()
	m := model.NewModel("shop")
	sales, err := m.AddModule("sales")
	require.NoError(t, err)
	customer, err := sales.AddEntity("Customer")
	require.NoError(t, err)
	order, err := sales.AddEntity("Order")
	require.NoError(t, err)
	return m, customer, order
}

func TestDeclaredManyToOne(t *testing.T) {
	require := require.New(t)
	m, customer, order := twoEntities(t)
	_, err := order.AddRelation(model.RelationDesc{Name: "customer", Rel: model.M2O, Target: "Customer"})
	require.NoError(err)
	m.Resolve()

	res := ResolveModel(m)

	entries := res.RelationsFor(order)
	require.Len(entries, 1)
	assert.Same(t, customer, entries[0].Target)
	assert.Equal(t, model.M2O, entries[0].Rel)
	assert.True(t, entries[0].Owner)

	mirror := res.RelationsFor(customer)
	require.Len(mirror, 1)
	assert.Same(t, order, mirror[0].Target)
	assert.Equal(t, model.O2M, mirror[0].Rel)
	assert.False(t, mirror[0].Owner)
}

func TestDeclaredOneToManyFlipsOwnership(t *testing.T) {
	require := require.New(t)
	m, customer, order := twoEntities(t)
	// Customer declares the relation, but Order is the "many" side and
	// conceptually holds the foreign key, so the resulting map must be
	// identical to the M2O declaration on Order.
	_, err := customer.AddRelation(model.RelationDesc{Name: "orders", Rel: model.O2M, Target: "Order"})
	require.NoError(err)
	m.Resolve()

	res := ResolveModel(m)

	entries := res.RelationsFor(order)
	require.Len(entries, 1)
	assert.Same(t, customer, entries[0].Target)
	assert.Equal(t, model.M2O, entries[0].Rel)
	assert.True(t, entries[0].Owner)

	mirror := res.RelationsFor(customer)
	require.Len(mirror, 1)
	assert.Same(t, order, mirror[0].Target)
	assert.Equal(t, model.O2M, mirror[0].Rel)
	assert.False(t, mirror[0].Owner)
}

func TestOwnershipSymmetry(t *testing.T) {
	tests := []struct {
		name string
		rel  model.Rel
	}{
		{"one-to-one", model.O2O},
		{"one-to-many", model.O2M},
		{"many-to-one", model.M2O},
		{"many-to-many", model.M2M},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, customer, order := twoEntities(t)
			_, err := order.AddRelation(model.RelationDesc{Name: "link", Rel: tt.rel, Target: "Customer"})
			require.NoError(t, err)
			m.Resolve()

			res := ResolveModel(m)
			all := append(res.RelationsFor(order), res.RelationsFor(customer)...)
			require.Len(t, all, 2, "every relation yields exactly two entries")

			owners := 0
			for _, e := range all {
				if e.Owner {
					owners++
				}
			}
			assert.Equal(t, 1, owners, "exactly one side owns the relation")
			assert.Equal(t, all[0].Rel, all[1].Rel.Inverse(), "cardinalities are mutual inverses")
		})
	}
}

func TestSelfReferencing(t *testing.T) {
	require := require.New(t)
	m := model.NewModel("org")
	hr, _ := m.AddModule("hr")
	emp, _ := hr.AddEntity("Employee")
	_, err := emp.AddRelation(model.RelationDesc{Name: "manager", Rel: model.M2O, Target: "Employee"})
	require.NoError(err)
	m.Resolve()

	res := ResolveModel(m)
	entries := res.RelationsFor(emp)
	require.Len(entries, 2, "both sides of a self-relation land on the same key")
	owners := 0
	for _, e := range entries {
		require.Same(emp, e.Target)
		if e.Owner {
			owners++
		}
	}
	require.Equal(1, owners)
	require.True(res.CircularlyRelated(emp, emp))
}

func TestUnresolvedTargetsSkipped(t *testing.T) {
	m, _, order := twoEntities(t)
	_, err := order.AddRelation(model.RelationDesc{Name: "ghost", Rel: model.M2O, Target: "Nothing"})
	require.NoError(t, err)
	// No Resolve call: the target stays unresolved.

	res := ResolveModel(m)
	assert.Empty(t, res.RelationsFor(order))
}

func TestQueries(t *testing.T) {
	require := require.New(t)
	m, customer, order := twoEntities(t)
	_, err := order.AddRelation(model.RelationDesc{Name: "customer", Rel: model.M2O, Target: "Customer"})
	require.NoError(err)
	m.Resolve()
	res := ResolveModel(m)

	owned := res.OwnedRelationsFor(order)
	require.Len(owned, 1)
	require.True(owned[0].Owner)
	require.Empty(res.OwnedRelationsFor(customer))

	entry, ok := res.RelationBetween(order, customer)
	require.True(ok)
	require.Same(customer, entry.Target)
	_, ok = res.RelationBetween(order, order)
	require.False(ok)

	require.True(res.CircularlyRelated(order, customer), "mirroring makes every related pair circular")
}
