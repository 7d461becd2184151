package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/noorskin/storefront/pkg/util/errorutil"
)

func strPtr(s string) *string { return &s }

func TestValidate_LoginRequiresBothFields(t *testing.T) {
	err := Validate(ManagerLoginRequest{})
	de := apperrors.ToDomainError(err)
	require.NotNil(t, de)
	assert.Equal(t, apperrors.CodeValidation, de.Code)
	assert.Equal(t, "هذا الحقل مطلوب", de.Details["username"])
	assert.Equal(t, "هذا الحقل مطلوب", de.Details["password"])

	assert.NoError(t, Validate(ManagerLoginRequest{Username: "u", Password: "p"}))
}

func TestValidate_ProfileUpdate(t *testing.T) {
	assert.NoError(t, Validate(ProfileUpdateRequest{}))
	assert.NoError(t, Validate(ProfileUpdateRequest{Email: strPtr("sara@glow-store.com")}))

	de := apperrors.ToDomainError(Validate(ProfileUpdateRequest{Email: strPtr("not-an-email"), Avatar: strPtr("nope")}))
	assert.Equal(t, "البريد الإلكتروني غير صالح", de.Details["email"])
	assert.Equal(t, "الرابط غير صالح", de.Details["avatar"])
}

func TestValidate_ProductRequest(t *testing.T) {
	lower := 50.0
	req := ProductRequest{Name: "كريم", Price: 80, OriginalPrice: &lower, Category: "creams", Rating: 6}
	de := apperrors.ToDomainError(Validate(req))
	assert.Contains(t, de.Details, "originalPrice")
	assert.Contains(t, de.Details, "rating")
	assert.NotContains(t, de.Details, "name")
}

func TestProductRequest_ToDomain(t *testing.T) {
	req := ProductRequest{Name: "كريم", Price: 80, Category: "creams", Stock: 0, Tags: []string{"جاف"}}
	p := req.ToDomain(7)
	assert.Equal(t, int64(7), p.ID)
	assert.False(t, p.InStock)

	req.Tags[0] = "changed"
	assert.Equal(t, "جاف", p.Tags[0])
}

func TestNewPagination(t *testing.T) {
	p := NewPagination(2, 20, 41)
	assert.Equal(t, 3, p.TotalPages)
	assert.Equal(t, 0, NewPagination(1, 0, 10).TotalPages)
}
