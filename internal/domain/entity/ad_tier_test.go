package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAdTier(t *testing.T) {
	tests := []struct {
		tier   AdTier
		valid  bool
		paid   bool
		banner bool
		name   string
	}{
		{tier: 0, name: "desconocido"},
		{tier: AdTierFree, valid: true, name: "gratuito"},
		{tier: AdTierBasic, valid: true, paid: true, name: "basico"},
		{tier: AdTierPremium, valid: true, paid: true, name: "premium"},
		{tier: AdTierHeaderBanner, valid: true, paid: true, banner: true, name: "banner-cabecera"},
		{tier: AdTierHomeBanner, valid: true, paid: true, banner: true, name: "banner-exclusivo"},
		{tier: 7, name: "desconocido"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.valid, tt.tier.IsValid())
			assert.Equal(t, tt.paid, tt.tier.IsPaid() && tt.tier.IsValid())
			assert.Equal(t, tt.banner, tt.tier.IsBanner())
			assert.Equal(t, tt.name, tt.tier.String())
		})
	}
}

func TestRoles(t *testing.T) {
	assert.True(t, RoleMerchant.IsValid())
	assert.True(t, RolePublic.IsValid())
	assert.False(t, Role("admin").IsValid())

	roles := Roles{RolePublic}
	assert.True(t, roles.Contains(RolePublic))
	assert.False(t, roles.Contains(RoleMerchant))
}
