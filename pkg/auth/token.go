package auth

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// StoreTokenClaims carries the merchant identity extracted from a storefront
// admin session token.
type StoreTokenClaims struct {
	StoreID uint64
}

// DecodeStoreToken extracts the store id from a Nexo session token. The token
// is minted by the storefront platform and only its payload is inspected here;
// tenant authorization happens against the installed-store record afterwards.
func DecodeStoreToken(tokenString string) (*StoreTokenClaims, error) {
	tokenString = strings.TrimSpace(tokenString)
	if tokenString == "" {
		return nil, fmt.Errorf("token is required")
	}

	claims := jwt.MapClaims{}
	parser := jwt.NewParser(jwt.WithoutClaimsValidation())
	if _, _, err := parser.ParseUnverified(tokenString, claims); err != nil {
		return nil, fmt.Errorf("parsing token: %w", err)
	}

	for _, key := range []string{"storeId", "store_id", "iss"} {
		raw, ok := claims[key]
		if !ok {
			continue
		}
		storeID, ok := asStoreID(raw)
		if !ok {
			continue
		}
		return &StoreTokenClaims{StoreID: storeID}, nil
	}

	return nil, fmt.Errorf("token payload carries no store id")
}

func asStoreID(raw any) (uint64, bool) {
	switch v := raw.(type) {
	case float64:
		if v <= 0 {
			return 0, false
		}
		return uint64(v), true
	case string:
		parsed, err := strconv.ParseUint(strings.TrimSpace(v), 10, 64)
		if err != nil || parsed == 0 {
			return 0, false
		}
		return parsed, true
	default:
		return 0, false
	}
}
