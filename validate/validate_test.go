package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DaviAlvarenga01/module-doc-lib-sub000/model"
)

func configured(name string) *model.Model {
	m := model.NewModel(name)
	m.SetConfig(&model.Config{Version: "1"})
	return m
}

func findIssue(issues []Issue, code string) (Issue, bool) {
	for _, i := range issues {
		if i.Code == code {
			return i, true
		}
	}
	return Issue{}, false
}

func TestMissingConfig(t *testing.T) {
	m := model.NewModel("shop")
	r := NewRunner(m)
	issues := r.Run()

	issue, ok := findIssue(issues, CodeMissingConfig)
	require.True(t, ok)
	assert.Equal(t, SeverityError, issue.Severity)
	assert.Equal(t, StateDone, r.State(), "a run always terminates at Done")
}

func TestEmptyModuleWarning(t *testing.T) {
	m := configured("shop")
	m.AddModule("empty")
	issues := NewRunner(m).Run()

	issue, ok := findIssue(issues, CodeEmptyModule)
	require.True(t, ok)
	assert.Equal(t, SeverityWarning, issue.Severity)
	assert.Equal(t, "shop/empty", issue.Path)
}

func TestDuplicateSiblingNames(t *testing.T) {
	require := require.New(t)
	m := configured("shop")
	sales, _ := m.AddModule("sales")
	_, err := sales.AddEntity("Order")
	require.NoError(err)

	// The builder refuses the duplicate outright.
	_, err = sales.AddEntity("Order")
	require.ErrorIs(err, model.ErrDuplicateName)

	// A hand-assembled duplicate (e.g. from an import) is reported by
	// the validator instead.
	dup, err := sales.AddEntity("OrderTmp")
	require.NoError(err)
	dup.Name = "Order"

	issues := NewRunner(m).Run()
	issue, ok := findIssue(issues, CodeDuplicateName)
	require.True(ok)
	assert.Equal(t, SeverityError, issue.Severity)
	assert.Equal(t, "shop/sales", issue.Path)
	assert.Contains(t, issue.Message, `"Order"`)
}

func TestEmptyEntityWarning(t *testing.T) {
	m := configured("shop")
	sales, _ := m.AddModule("sales")
	sales.AddEntity("Hollow")
	abstract, _ := sales.AddEntity("Base")
	abstract.Abstract = true

	issues := NewRunner(m).Run()
	var empties []Issue
	for _, i := range issues {
		if i.Code == CodeEmptyEntity {
			empties = append(empties, i)
		}
	}
	require.Len(t, empties, 1, "abstract entities are exempt")
	assert.Equal(t, "shop/sales/Hollow", empties[0].Path)
	assert.Equal(t, SeverityWarning, empties[0].Severity)
}

func TestDuplicateMemberNames(t *testing.T) {
	require := require.New(t)
	m := configured("shop")
	sales, _ := m.AddModule("sales")
	order, _ := sales.AddEntity("Order")
	a, err := order.AddAttribute(model.AttributeDesc{Name: "tmp", Type: model.TypeString})
	require.NoError(err)
	_, err = order.AddAttribute(model.AttributeDesc{Name: "number", Type: model.TypeString})
	require.NoError(err)
	a.Name = "number"

	issues := NewRunner(m).Run()
	issue, ok := findIssue(issues, CodeDuplicateName)
	require.True(ok)
	require.Contains(issue.Message, "attribute")
	require.Equal(SeverityError, issue.Severity)
}

func TestUnresolvedReferences(t *testing.T) {
	m := configured("shop")
	sales, _ := m.AddModule("sales")
	order, _ := sales.AddEntity("Order")
	order.AddRelation(model.RelationDesc{Name: "customer", Rel: model.M2O, Target: "Customer"})
	order.SetSuperType("Missing")
	order.AddAttribute(model.AttributeDesc{Name: "status", Enum: "NoSuchEnum"})
	m.Resolve()

	issues := NewRunner(m).Run()
	var unresolved []Issue
	for _, i := range issues {
		if i.Code == CodeUnresolvedReference {
			unresolved = append(unresolved, i)
		}
	}
	require.Len(t, unresolved, 3, "supertype, relation target and enum are all reported")
	for _, i := range unresolved {
		assert.Equal(t, SeverityError, i.Severity)
	}
}

func TestSensitiveAttributeHeuristic(t *testing.T) {
	m := configured("crm")
	mod, _ := m.AddModule("people")
	person, _ := mod.AddEntity("Person")
	person.AddAttribute(model.AttributeDesc{Name: "CPF", Type: model.TypeString})
	person.AddAttribute(model.AttributeDesc{Name: "nickname", Type: model.TypeString})

	issues := NewRunner(m).Run()
	issue, ok := findIssue(issues, CodeSensitiveAttribute)
	require.True(t, ok)
	assert.Equal(t, SeverityWarning, issue.Severity, "compliance hits are warnings, not errors")
	assert.Equal(t, "crm/people/Person/CPF", issue.Path)
}

func TestCustomPolicy(t *testing.T) {
	m := configured("crm")
	mod, _ := m.AddModule("people")
	person, _ := mod.AddEntity("Person")
	person.AddAttribute(model.AttributeDesc{Name: "senha", Type: model.TypeString})
	person.AddAttribute(model.AttributeDesc{Name: "codinome", Type: model.TypeString})

	r := NewRunner(m, WithPolicy(NewPolicy("codinome")))
	issues := r.Run()

	issue, ok := findIssue(issues, CodeSensitiveAttribute)
	require.True(t, ok)
	assert.Contains(t, issue.Path, "codinome")
	// The default list is replaced, not extended.
	for _, i := range issues {
		assert.NotContains(t, i.Path, "senha")
	}
}

func TestCleanModelHasNoIssues(t *testing.T) {
	m := configured("shop")
	sales, _ := m.AddModule("sales")
	customer, _ := sales.AddEntity("Customer")
	customer.AddAttribute(model.AttributeDesc{Name: "name", Type: model.TypeString})
	order, _ := sales.AddEntity("Order")
	order.AddAttribute(model.AttributeDesc{Name: "number", Type: model.TypeString, Unique: true})
	order.AddRelation(model.RelationDesc{Name: "customer", Rel: model.M2O, Target: "Customer"})
	m.Resolve()

	r := NewRunner(m)
	issues := r.Run()
	assert.Empty(t, issues)
	assert.Equal(t, StateDone, r.State())
}

func TestRunRestartsCleanly(t *testing.T) {
	m := model.NewModel("shop")
	r := NewRunner(m)
	first := r.Run()
	second := r.Run()
	assert.Equal(t, first, second, "a rerun does not accumulate issues")
}
