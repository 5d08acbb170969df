package playback

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/base64"
	"encoding/json"
	"encoding/pem"
	"net/url"
	"strings"
	"testing"
	"time"

	"microdrama-go/internal/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testKey(t *testing.T) (*rsa.PrivateKey, string) {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	block := pem.EncodeToMemory(&pem.Block{Type: "RSA PRIVATE KEY", Bytes: x509.MarshalPKCS1PrivateKey(key)})
	return key, string(block)
}

func signedSigner(t *testing.T, pemText string) *Signer {
	t.Helper()
	s := NewSigner(config.MuxConfig{
		SigningKeyID:      "key-123",
		SigningKeyPrivate: base64.StdEncoding.EncodeToString([]byte(pemText)),
	})
	require.True(t, s.Signing())
	return s
}

func tokenOf(t *testing.T, rawURL string) string {
	t.Helper()
	u, err := url.Parse(rawURL)
	require.NoError(t, err)
	token := u.Query().Get("token")
	require.NotEmpty(t, token)
	return token
}

func decodeSegment(t *testing.T, seg string) map[string]interface{} {
	t.Helper()
	assert.NotContains(t, seg, "=", "segments are unpadded")
	raw, err := base64.RawURLEncoding.DecodeString(seg)
	require.NoError(t, err)
	out := map[string]interface{}{}
	require.NoError(t, json.Unmarshal(raw, &out))
	return out
}

func TestPlaybackURL_Unsigned(t *testing.T) {
	s := NewSigner(config.MuxConfig{})
	assert.False(t, s.Signing())
	assert.Equal(t, "https://stream.mux.com/abc123.m3u8", s.PlaybackURL("abc123"))
	assert.Equal(t, "https://image.mux.com/abc123/thumbnail.jpg", s.ThumbnailURL("abc123"))

	// 只有 key id 没有私钥同样不签名
	s = NewSigner(config.MuxConfig{SigningKeyID: "only-id"})
	assert.Equal(t, "https://stream.mux.com/abc123.m3u8", s.PlaybackURL("abc123"))
}

func TestPlaybackURL_Signed(t *testing.T) {
	key, pemText := testKey(t)
	s := signedSigner(t, pemText)
	fixed := time.Unix(1_700_000_000, 0)
	s.now = func() time.Time { return fixed }

	got := s.PlaybackURL("abc123")
	require.True(t, strings.HasPrefix(got, "https://stream.mux.com/abc123.m3u8?token="))

	token := tokenOf(t, got)
	segments := strings.Split(token, ".")
	require.Len(t, segments, 3)

	header := decodeSegment(t, segments[0])
	assert.Equal(t, "RS256", header["alg"])
	assert.Equal(t, "key-123", header["kid"])
	assert.NotContains(t, header, "typ")

	payload := decodeSegment(t, segments[1])
	assert.Equal(t, "abc123", payload["sub"])
	assert.Equal(t, "v", payload["aud"])
	assert.Equal(t, float64(fixed.Add(DefaultTTL).Unix()), payload["exp"])

	// 用公钥验签，时间取签发时刻
	parsed, err := jwt.Parse(token, func(tok *jwt.Token) (interface{}, error) {
		return &key.PublicKey, nil
	},
		jwt.WithValidMethods([]string{"RS256"}),
		jwt.WithAudience("v"),
		jwt.WithTimeFunc(func() time.Time { return fixed }),
	)
	require.NoError(t, err)
	assert.True(t, parsed.Valid)
}

func TestSignPlaybackURL_CustomTTL(t *testing.T) {
	_, pemText := testKey(t)
	s := signedSigner(t, pemText)
	fixed := time.Unix(1_700_000_000, 0)
	s.now = func() time.Time { return fixed }

	token := tokenOf(t, s.SignPlaybackURL("abc123", time.Hour))
	payload := decodeSegment(t, strings.Split(token, ".")[1])
	assert.Equal(t, float64(fixed.Add(time.Hour).Unix()), payload["exp"])
}

func TestNewSigner_ConfiguredTTL(t *testing.T) {
	_, pemText := testKey(t)
	s := NewSigner(config.MuxConfig{
		SigningKeyID:      "key-123",
		SigningKeyPrivate: pemText,
		TokenTTLSeconds:   60,
	})
	require.True(t, s.Signing(), "raw PEM is accepted")
	fixed := time.Unix(1_700_000_000, 0)
	s.now = func() time.Time { return fixed }

	token := tokenOf(t, s.PlaybackURL("abc123"))
	payload := decodeSegment(t, strings.Split(token, ".")[1])
	assert.Equal(t, float64(fixed.Add(time.Minute).Unix()), payload["exp"])
}

func TestThumbnailURL_Signed(t *testing.T) {
	_, pemText := testKey(t)
	s := signedSigner(t, pemText)

	got := s.ThumbnailURL("abc123")
	require.True(t, strings.HasPrefix(got, "https://image.mux.com/abc123/thumbnail.jpg?token="))
	payload := decodeSegment(t, strings.Split(tokenOf(t, got), ".")[1])
	assert.Equal(t, "t", payload["aud"])
}

func TestPlaybackURL_BadKeyFailsOpen(t *testing.T) {
	for name, raw := range map[string]string{
		"not base64":     "!!!not-base64!!!",
		"base64 of junk": base64.StdEncoding.EncodeToString([]byte("not a pem block")),
	} {
		t.Run(name, func(t *testing.T) {
			s := NewSigner(config.MuxConfig{SigningKeyID: "key-123", SigningKeyPrivate: raw})
			assert.False(t, s.Signing())
			assert.Equal(t, "https://stream.mux.com/abc123.m3u8", s.PlaybackURL("abc123"))
		})
	}
}

func TestDecodeKey(t *testing.T) {
	_, pemText := testKey(t)

	key, err := decodeKey(base64.StdEncoding.EncodeToString([]byte(pemText)))
	require.NoError(t, err)
	assert.NotNil(t, key)

	// base64 文本中夹带换行也能解析
	wrapped := base64.StdEncoding.EncodeToString([]byte(pemText))
	wrapped = wrapped[:40] + "\n" + wrapped[40:]
	_, err = decodeKey(wrapped)
	require.NoError(t, err)

	_, err = decodeKey("   ")
	assert.ErrorIs(t, err, errEmptyKey)
}
