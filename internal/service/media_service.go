package service

import (
	"context"
	"crypto/rand"
	"errors"
	"io"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	"github.com/glptrack/wellness-service/internal/domain"
	"github.com/glptrack/wellness-service/internal/repository"
	"github.com/glptrack/wellness-service/internal/storage"
	"github.com/glptrack/wellness-service/pkg/util"
)

// shortcodePattern matches embedded image references in post and article
// text, e.g. [img:a3k9f].
var shortcodePattern = regexp.MustCompile(`\[img:([a-z0-9]{5})\]`)

const (
	shortcodeAlphabet   = "abcdefghijklmnopqrstuvwxyz0123456789"
	shortcodeLength     = 5
	shortcodeMaxRetries = 5
	uniqueViolationCode = "23505"
)

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

const maxUploadBytes = int64(10 << 20)

// UploadResult describes a stored object.
type UploadResult struct {
	Key  string `json:"key"`
	URL  string `json:"url"`
	Code string `json:"code,omitempty"`
}

// MediaService owns object storage uploads and the image shortcode table.
type MediaService struct {
	shortcodes repository.ShortcodeRepository
	store      *storage.Client
	logger     *zap.Logger
	now        func() int64
}

// NewMediaService constructs the service. A nil storage client disables
// uploads but leaves shortcode resolution working for already-stored keys.
func NewMediaService(shortcodes repository.ShortcodeRepository, store *storage.Client, logger *zap.Logger) *MediaService {
	return &MediaService{
		shortcodes: shortcodes,
		store:      store,
		logger:     logger,
		now:        func() int64 { return time.Now().UnixMilli() },
	}
}

// Upload stores an image and registers a shortcode for it.
func (s *MediaService) Upload(ctx context.Context, fileName, contentType string, body io.Reader, size int64) (*UploadResult, error) {
	if s.store == nil {
		return nil, util.NewValidationError("object storage is not configured", nil)
	}
	if !allowedImageTypes[contentType] {
		return nil, util.NewValidationError("unsupported content type", map[string]any{"contentType": contentType})
	}
	if size <= 0 || size > maxUploadBytes {
		return nil, util.NewValidationError("file size out of range", map[string]any{"size": size})
	}

	key := "uploads/" + uuid.NewString() + strings.ToLower(filepath.Ext(fileName))
	if err := s.store.Upload(ctx, key, contentType, body, size); err != nil {
		return nil, util.NewInternalError(err)
	}

	code, err := s.createShortcode(ctx, key)
	if err != nil {
		// Roll the object back so storage does not leak.
		if delErr := s.store.Delete(ctx, key); delErr != nil {
			s.logger.Warn("orphaned upload", zap.String("key", key), zap.Error(delErr))
		}
		return nil, err
	}

	return &UploadResult{Key: key, URL: s.store.FileURL(key), Code: code}, nil
}

// Resolve maps a shortcode to its public URL.
func (s *MediaService) Resolve(ctx context.Context, code string) (string, error) {
	sc, err := s.shortcodes.GetByCode(ctx, strings.ToLower(strings.TrimSpace(code)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", util.NewNotFound("shortcode", map[string]any{"code": code})
		}
		return "", util.MapError(err)
	}
	if s.store == nil {
		return sc.StorageKey, nil
	}
	return s.store.FileURL(sc.StorageKey), nil
}

// DeleteShortcode removes the mapping and the stored object.
func (s *MediaService) DeleteShortcode(ctx context.Context, code string) error {
	key, err := s.shortcodes.DeleteByCode(ctx, code)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return util.NewNotFound("shortcode", map[string]any{"code": code})
		}
		return util.MapError(err)
	}
	if s.store != nil {
		if err := s.store.Delete(ctx, key); err != nil {
			// The mapping is gone; log and move on rather than resurrect it.
			s.logger.Warn("failed to delete storage object", zap.String("key", key), zap.Error(err))
		}
	}
	return nil
}

// PurgeEmbedded garbage-collects every shortcode image referenced in the
// given text. Used when a post or article is deleted.
func (s *MediaService) PurgeEmbedded(ctx context.Context, text string) {
	for _, code := range ExtractShortcodes(text) {
		if err := s.DeleteShortcode(ctx, code); err != nil {
			var domainErr *util.DomainError
			if errors.As(err, &domainErr) && domainErr.Code == "NOT_FOUND" {
				continue
			}
			s.logger.Warn("shortcode purge failed", zap.String("code", code), zap.Error(err))
		}
	}
}

// ExtractShortcodes returns the unique shortcode list embedded in text.
func ExtractShortcodes(text string) []string {
	matches := shortcodePattern.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(matches))
	var codes []string
	for _, m := range matches {
		if !seen[m[1]] {
			seen[m[1]] = true
			codes = append(codes, m[1])
		}
	}
	return codes
}

func (s *MediaService) createShortcode(ctx context.Context, storageKey string) (string, error) {
	for attempt := 0; attempt < shortcodeMaxRetries; attempt++ {
		code, err := randomShortcode()
		if err != nil {
			return "", util.NewInternalError(err)
		}
		sc := &domain.ImageShortcode{Code: code, StorageKey: storageKey, CreatedAt: s.now()}
		err = s.shortcodes.Create(ctx, sc)
		if err == nil {
			return code, nil
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			continue
		}
		return "", util.MapError(err)
	}
	return "", util.NewInternalError(errors.New("shortcode space exhausted after retries"))
}

func randomShortcode() (string, error) {
	buf := make([]byte, shortcodeLength)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	out := make([]byte, shortcodeLength)
	for i, b := range buf {
		out[i] = shortcodeAlphabet[int(b)%len(shortcodeAlphabet)]
	}
	return string(out), nil
}
