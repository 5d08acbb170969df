// Package playback 生成 Mux 播放地址与缩略图地址，配置了签名密钥时附带 RS256 token
package playback

import (
	"crypto/rsa"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"microdrama-go/internal/config"
	"microdrama-go/internal/metrics"
	"microdrama-go/pkg/logger"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultTTL 播放 token 默认有效期（7 天）
const DefaultTTL = 7 * 24 * time.Hour

// Mux token 的 audience
const (
	AudienceVideo     = "v"
	AudienceThumbnail = "t"
)

var errEmptyKey = errors.New("empty signing key")

// Signer Mux 播放地址生成器，并发安全
type Signer struct {
	streamHost string
	imageHost  string
	keyID      string
	key        *rsa.PrivateKey
	keyErr     error
	ttl        time.Duration
	now        func() time.Time
}

// NewSigner 根据配置创建 Signer。
// 私钥只在这里解码一次；解码失败不会返回错误，之后所有地址都退化为不签名。
func NewSigner(cfg config.MuxConfig) *Signer {
	s := &Signer{
		streamHost: defaultString(cfg.StreamHost, "stream.mux.com"),
		imageHost:  defaultString(cfg.ImageHost, "image.mux.com"),
		keyID:      cfg.SigningKeyID,
		ttl:        DefaultTTL,
		now:        time.Now,
	}
	if cfg.TokenTTLSeconds > 0 {
		s.ttl = time.Duration(cfg.TokenTTLSeconds) * time.Second
	}

	if cfg.SigningEnabled() {
		s.key, s.keyErr = decodeKey(cfg.SigningKeyPrivate)
		if s.keyErr != nil {
			logger.Error("Failed to decode Mux signing key, playback URLs will be unsigned",
				logger.String("key_id", cfg.SigningKeyID),
				logger.Err(s.keyErr),
			)
		}
	}
	return s
}

// Signing 是否会生成带 token 的地址
func (s *Signer) Signing() bool {
	return s.key != nil && s.keyID != ""
}

// PlaybackURL 使用默认有效期生成播放地址
func (s *Signer) PlaybackURL(assetID string) string {
	return s.SignPlaybackURL(assetID, s.ttl)
}

// SignPlaybackURL 生成 HLS 播放地址，ttl 为 token 有效期。
// 任何签名错误都只记录日志，返回不带 token 的地址。
func (s *Signer) SignPlaybackURL(assetID string, ttl time.Duration) string {
	base := fmt.Sprintf("https://%s/%s.m3u8", s.streamHost, assetID)
	return s.withToken(base, assetID, AudienceVideo, ttl)
}

// ThumbnailURL 生成剧集缩略图地址（audience 为 t）
func (s *Signer) ThumbnailURL(assetID string) string {
	return s.withToken(s.StaticThumbnailURL(assetID), assetID, AudienceThumbnail, s.ttl)
}

// StaticThumbnailURL 不带 token 的缩略图地址，用于落库
func (s *Signer) StaticThumbnailURL(assetID string) string {
	return fmt.Sprintf("https://%s/%s/thumbnail.jpg", s.imageHost, assetID)
}

func (s *Signer) withToken(base, assetID, audience string, ttl time.Duration) string {
	if s.keyID == "" || (s.key == nil && s.keyErr == nil) {
		metrics.PlaybackSigns.WithLabelValues(audience, "unsigned").Inc()
		return base
	}
	if s.keyErr != nil {
		metrics.PlaybackSigns.WithLabelValues(audience, "failed").Inc()
		return base
	}

	token, err := s.sign(assetID, audience, ttl)
	if err != nil {
		logger.Error("Failed to sign playback token",
			logger.String("asset_id", assetID),
			logger.String("audience", audience),
			logger.Err(err),
		)
		metrics.PlaybackSigns.WithLabelValues(audience, "failed").Inc()
		return base
	}

	metrics.PlaybackSigns.WithLabelValues(audience, "signed").Inc()
	return base + "?token=" + token
}

// sign 生成 compact JWT：header {alg, kid}，payload {sub, exp, aud}
func (s *Signer) sign(assetID, audience string, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		ttl = s.ttl
	}
	// aud 必须是字符串，RegisteredClaims 会把它编码成数组
	token := jwt.NewWithClaims(jwt.SigningMethodRS256, jwt.MapClaims{
		"sub": assetID,
		"exp": s.now().Add(ttl).Unix(),
		"aud": audience,
	})
	token.Header["kid"] = s.keyID
	delete(token.Header, "typ")

	signed, err := token.SignedString(s.key)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// decodeKey 解析私钥：base64 编码的 PEM，或直接是 PEM 文本
func decodeKey(raw string) (*rsa.PrivateKey, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, errEmptyKey
	}

	pemBytes := []byte(raw)
	if !strings.HasPrefix(raw, "-----BEGIN") {
		decoded, err := base64.StdEncoding.DecodeString(strings.Join(strings.Fields(raw), ""))
		if err != nil {
			return nil, fmt.Errorf("base64 decode signing key: %w", err)
		}
		pemBytes = decoded
	}

	key, err := jwt.ParseRSAPrivateKeyFromPEM(pemBytes)
	if err != nil {
		return nil, fmt.Errorf("parse signing key: %w", err)
	}
	return key, nil
}

func defaultString(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
