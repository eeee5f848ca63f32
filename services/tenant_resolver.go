package services

import (
	"errors"
	"strings"
)

// ScopeKind membedakan dua jalur resolusi tenant.
type ScopeKind string

const (
	// ScopeAuthenticated: scope diambil dari membership staff.
	ScopeAuthenticated ScopeKind = "authenticated"
	// ScopeAnonymous: scope diambil dari slug di path publik.
	ScopeAnonymous ScopeKind = "anonymous"
)

// TenantScope adalah tenant aktif hasil resolusi. Nilai turunan, tidak pernah
// disimpan; setiap call site me-resolve ulang karena path bisa berubah tanpa
// actor berubah.
type TenantScope struct {
	Kind       ScopeKind
	TenantID   uint
	TenantSlug string
	TenantName string
	// Role actor di tenant ini; kosong untuk scope anonim.
	Role string
}

// ErrNoTenantAccess: staff login tapi tidak punya membership sama sekali.
// Sengaja tidak jatuh ke slug URL supaya akun staff tidak diam-diam beraksi
// atas tenant sembarang.
var ErrNoTenantAccess = errors.New("akun ini tidak terdaftar di tenant manapun")

// Segmen path pertama yang bukan slug tenant.
var reservedPathSegments = map[string]bool{
	"admin":     true,
	"login":     true,
	"checkout":  true,
	"orders":    true,
	"invoice":   true,
	"success":   true,
	"auth":      true,
	"undefined": true,
	"null":      true,
}

// ResolveTenantScope menentukan tenant aktif untuk (actor, path). Fungsi murni
// dari argumennya.
//
// Staff dengan membership memakai membership pertama (urutan stabil dari
// store). Pengunjung anonim memakai segmen path pertama sebagai slug; segmen
// reserved atau kosong jatuh ke defaultSlug.
func ResolveTenantScope(actor *Actor, currentPath, defaultSlug string) (TenantScope, error) {
	if actor.IsAuthenticated() {
		memberships := actor.Memberships()
		if len(memberships) == 0 {
			return TenantScope{}, ErrNoTenantAccess
		}
		m := memberships[0]
		return TenantScope{
			Kind:       ScopeAuthenticated,
			TenantID:   m.TenantID,
			TenantSlug: m.Tenant.Slug,
			TenantName: m.Tenant.Name,
			Role:       m.Role,
		}, nil
	}

	slug := firstPathSegment(currentPath)
	if slug == "" || reservedPathSegments[slug] {
		slug = defaultSlug
	}
	return TenantScope{
		Kind:       ScopeAnonymous,
		TenantSlug: slug,
	}, nil
}

func firstPathSegment(path string) string {
	path = strings.TrimPrefix(path, "/")
	if path == "" {
		return ""
	}
	if idx := strings.IndexByte(path, '/'); idx >= 0 {
		path = path[:idx]
	}
	return strings.ToLower(strings.TrimSpace(path))
}
