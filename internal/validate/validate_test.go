package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRequired(t *testing.T) {
	errs := Errors{}
	errs.Check("name", "", Required)
	errs.Check("city", "Gangtok", Required)

	assert.False(t, errs.Ok())
	assert.Equal(t, []string{"is required"}, errs["name"])
	assert.NotContains(t, errs, "city")
}

func TestMinLen(t *testing.T) {
	errs := Errors{}
	errs.Check("phone", "123", MinLen(5))
	errs.Check("phone2", "12345", MinLen(5))

	assert.Equal(t, []string{"must be at least 5 characters"}, errs["phone"])
	assert.NotContains(t, errs, "phone2")
}

func TestEmail(t *testing.T) {
	errs := Errors{}
	errs.Check("email", "not-an-email", Email)
	errs.Check("ok", "a@b.co", Email)

	assert.Contains(t, errs, "email")
	assert.NotContains(t, errs, "ok")
}

func TestDetailsShape(t *testing.T) {
	errs := Errors{}
	errs.Add("email", "must be a valid email")

	details := errs.Details()
	assert.Equal(t, map[string]any{"fieldErrors": errs}, details)
}

func TestMultipleRulesAccumulate(t *testing.T) {
	errs := Errors{}
	errs.Check("email", "", Required, Email)

	assert.Len(t, errs["email"], 2)
}
