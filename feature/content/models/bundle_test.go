package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBundleCanonicalize(t *testing.T) {
	tests := []struct {
		name    string
		bundle  *Bundle
		wantErr string
	}{
		{
			name: "valid bundle",
			bundle: &Bundle{
				Key:        " stem ",
				Name:       "STEM Pack",
				CourseKeys: []string{" math101", "bio201 "},
				Discount:   decimal.NewFromInt(15),
			},
		},
		{
			name:    "missing name",
			bundle:  &Bundle{Key: "stem", Discount: decimal.NewFromInt(15)},
			wantErr: "key and name must be non-empty",
		},
		{
			name:    "zero discount",
			bundle:  &Bundle{Key: "stem", Name: "STEM Pack"},
			wantErr: "discount must be positive",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.bundle.Canonicalize()

			if tt.wantErr == "" {
				require.NoError(t, err)
				assert.Equal(t, "stem", tt.bundle.Key)
				assert.Equal(t, []string{"math101", "bio201"}, tt.bundle.CourseKeys)
				return
			}

			var validationErr *ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.Contains(t, validationErr.Reason, tt.wantErr)
		})
	}
}

func TestIconCanonicalize(t *testing.T) {
	price := decimal.NewFromInt(5)
	zero := decimal.Zero

	tests := []struct {
		name    string
		icon    *Icon
		wantErr string
	}{
		{
			name: "valid icon",
			icon: &Icon{Key: "star", Price: &price, ImageFileName: "star.png"},
		},
		{
			name: "free initial icon without price",
			icon: &Icon{Key: "default", IsInitial: true, ImageFileName: "default.png"},
		},
		{
			name:    "image is required",
			icon:    &Icon{Key: "star", Price: &price},
			wantErr: "image file name is required",
		},
		{
			name:    "zero price is invalid",
			icon:    &Icon{Key: "star", Price: &zero, ImageFileName: "star.png"},
			wantErr: "price must be positive",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.icon.Canonicalize()

			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}

			var validationErr *ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.Contains(t, validationErr.Reason, tt.wantErr)
		})
	}
}

func TestBundleFingerprintSensitivity(t *testing.T) {
	build := func() *Bundle {
		return &Bundle{
			Key:        "stem",
			Name:       "STEM Pack",
			CourseKeys: []string{"math101", "bio201"},
			Discount:   decimal.NewFromInt(15),
		}
	}

	a := build()
	b := build()
	a.RefreshFingerprint()
	b.RefreshFingerprint()
	assert.Equal(t, a.Fingerprint(), b.Fingerprint())

	b.Discount = decimal.NewFromInt(20)
	b.RefreshFingerprint()
	assert.NotEqual(t, a.Fingerprint(), b.Fingerprint())
}
