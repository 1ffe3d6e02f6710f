package utils // package utils provides helper functions for token creation and hashing

import (
    "crypto/rand"   // secure random number generation
    "crypto/sha256" // SHA‑256 hashing for refresh tokens
    "encoding/hex"  // hex encoding and decoding functions
    "errors"        // sentinel errors for token validation
    "time"          // time utilities for generating expirations

    "github.com/golang-jwt/jwt/v5" // JWT library for creating signed tokens
)

// ErrInvalidToken is returned whenever an access token fails signature,
// issuer, audience or claim-shape validation.  Expiry is deliberately not
// part of this check in the refresh flow; see ParseExpiredAccessToken.
var ErrInvalidToken = errors.New("invalid access token")

// AccessToken represents a signed JWT access token along with its expiry.
// The Token field contains the JWT string.  Exp stores the expiration
// timestamp as a time.Time.  Access tokens are short‑lived and encoded
// in the Authorization header when calling protected endpoints.
type AccessToken struct {
    Token string    // the serialized JWT string
    Exp   time.Time // the UTC expiration time
}

// RefreshToken represents a long‑lived token used to obtain new access tokens.
// The Raw field contains the raw token string returned to the client.  The Exp
// field records when it expires.  In the database only a SHA‑256 hash of the
// raw string is stored for security reasons.
type RefreshToken struct {
    Raw string    // raw token string returned to the client
    Exp time.Time // UTC expiration time
}

// AccessClaims carries the identity embedded in an access token.  Subject is
// the numeric user ID, Email the login handle (email or phone number) and
// Role the authorization role ("user" or "admin").
type AccessClaims struct {
    Subject uint64
    Email   string
    Role    string
}

// NewAccessToken builds and signs an HS256 JWT for a user.  It takes the
// signing secret, the configured issuer and audience, the user's identity
// and a TTL in minutes.  The JWT includes subject (sub), email, role,
// issuer (iss), audience (aud), expiration (exp) and issued at (iat)
// claims.  The signing secret is process-wide configuration loaded once at
// startup; this function holds no other state.
func NewAccessToken(secret, issuer, audience string, userID uint64, email, role string, ttlMin int) (AccessToken, error) {
    exp := time.Now().UTC().Add(time.Duration(ttlMin) * time.Minute)
    claims := jwt.MapClaims{
        "sub":   userID,
        "email": email,
        "role":  role,
        "iss":   issuer,
        "aud":   audience,
        "exp":   exp.Unix(),
        "iat":   time.Now().UTC().Unix(),
    }
    t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
    signed, err := t.SignedString([]byte(secret))
    if err != nil {
        return AccessToken{}, err
    }
    return AccessToken{Token: signed, Exp: exp}, nil
}

// NewRefreshToken returns a cryptographically secure random token (raw) and
// its expiration time.  Refresh tokens are opaque: nothing is embedded in
// the string itself, validity lives entirely server-side.  The ttlDays
// parameter controls how many days the refresh token is valid.
func NewRefreshToken(ttlDays int) (RefreshToken, error) {
    // 48 random bytes -> 96 hex chars, far beyond the 128-bit entropy floor.
    raw, err := randomHex(48)
    if err != nil {
        return RefreshToken{}, err
    }
    return RefreshToken{
        Raw: raw,
        Exp: time.Now().UTC().Add(time.Duration(ttlDays) * 24 * time.Hour),
    }, nil
}

// ParseExpiredAccessToken validates an access token's signature, signing
// algorithm, issuer and audience while explicitly skipping the expiry check.
// The refresh flow must accept an access token that already expired; the
// paired refresh token carries the actual validity.  On success the embedded
// identity claims are returned.  Any signature, algorithm, issuer, audience
// or claim-shape mismatch yields ErrInvalidToken.
func ParseExpiredAccessToken(secret, issuer, audience, token string) (AccessClaims, error) {
    parser := jwt.NewParser(
        jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
        jwt.WithoutClaimsValidation(),
    )
    tok, err := parser.Parse(token, func(t *jwt.Token) (interface{}, error) {
        return []byte(secret), nil
    })
    if err != nil || !tok.Valid {
        return AccessClaims{}, ErrInvalidToken
    }
    claims, ok := tok.Claims.(jwt.MapClaims)
    if !ok {
        return AccessClaims{}, ErrInvalidToken
    }
    // WithoutClaimsValidation disables issuer/audience checks as well, so
    // re-validate those two by hand.  Only exp stays unchecked.
    if iss, err := claims.GetIssuer(); err != nil || iss != issuer {
        return AccessClaims{}, ErrInvalidToken
    }
    aud, err := claims.GetAudience()
    if err != nil || !containsAudience(aud, audience) {
        return AccessClaims{}, ErrInvalidToken
    }
    out := AccessClaims{}
    // JWT numeric claims decode as float64.
    sub, ok := claims["sub"].(float64)
    if !ok || sub <= 0 {
        return AccessClaims{}, ErrInvalidToken
    }
    out.Subject = uint64(sub)
    if email, ok := claims["email"].(string); ok {
        out.Email = email
    }
    role, ok := claims["role"].(string)
    if !ok || role == "" {
        return AccessClaims{}, ErrInvalidToken
    }
    out.Role = role
    return out, nil
}

func containsAudience(aud jwt.ClaimStrings, want string) bool {
    for _, a := range aud {
        if a == want {
            return true
        }
    }
    return false
}

// HashRefreshRaw returns the SHA‑256 hash of the raw refresh token as a hex
// string.  Storing only the hash in the database prevents attackers from
// using stolen database entries to refresh sessions.
func HashRefreshRaw(raw string) string {
    sum := sha256.Sum256([]byte(raw))
    return hex.EncodeToString(sum[:])
}

// randomHex returns a hex‑encoded string generated from n bytes of
// cryptographically secure random data.  It is used to produce refresh
// tokens.  If the random number generator fails, an error is returned.
func randomHex(n int) (string, error) {
    buf := make([]byte, n)
    if _, err := rand.Read(buf); err != nil {
        return "", err
    }
    return hex.EncodeToString(buf), nil
}
