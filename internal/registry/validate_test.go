package registry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/parsekit/internal/field"
)

func TestValidatePasses(t *testing.T) {
	reg, err := Build("ok", nil, []*field.Descriptor{
		field.New(0, "header"),
		field.New(1, "body", field.WithDependencies("header")),
	})
	require.NoError(t, err)
	reg.BindHandler("header", noopHandler)
	reg.BindHandler("body", noopHandler)

	assert.NoError(t, reg.Validate(context.Background()))
}

func TestValidateReportsMissingHandler(t *testing.T) {
	reg, err := Build("gap", nil, []*field.Descriptor{
		field.New(0, "header"),
		field.New(1, "body"),
	})
	require.NoError(t, err)
	reg.BindHandler("header", noopHandler)

	err = reg.Validate(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "field 'body' has no bound Go handler")
}

func TestValidateReportsUnregisteredDependency(t *testing.T) {
	reg, err := Build("gap", nil, []*field.Descriptor{
		field.New(0, "body", field.WithDependencies("phantom")),
	})
	require.NoError(t, err)
	reg.BindHandler("body", noopHandler)

	err = reg.Validate(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "depends on 'phantom'")
}

func TestValidateReportsHandlerForUndeclaredField(t *testing.T) {
	reg, err := Build("gap", nil, []*field.Descriptor{
		field.New(0, "header"),
	})
	require.NoError(t, err)
	reg.BindHandler("header", noopHandler)
	reg.BindHandler("orphan", noopHandler)

	err = reg.Validate(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "handler bound for 'orphan'")
}

func TestValidateAcceptsInheritedHandlers(t *testing.T) {
	base, err := Build("base", nil, []*field.Descriptor{field.New(0, "header")})
	require.NoError(t, err)
	base.BindHandler("header", noopHandler)

	child, err := Build("child", []*Registry{base}, nil)
	require.NoError(t, err)

	// The child binds nothing itself; the inherited binding satisfies parity.
	assert.NoError(t, child.Validate(context.Background()))
}

func TestValidateAggregatesAllFindings(t *testing.T) {
	reg, err := Build("multi", nil, []*field.Descriptor{
		field.New(0, "a", field.WithDependencies("nope")),
		field.New(1, "b"),
	})
	require.NoError(t, err)

	err = reg.Validate(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "field 'a' has no bound Go handler")
	assert.Contains(t, err.Error(), "field 'b' has no bound Go handler")
	assert.Contains(t, err.Error(), "depends on 'nope'")
}
