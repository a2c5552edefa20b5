package service

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"github.com/lockboxd/lockbox/internal/logger"
	"github.com/lockboxd/lockbox/internal/store"
	"github.com/lockboxd/lockbox/models"
)

const (
	// dashboardIconsCDN serves the homarr-labs/dashboard-icons collection.
	dashboardIconsCDN = "https://cdn.jsdelivr.net/gh/homarr-labs/dashboard-icons"

	// googleFaviconAPI resolves a site favicon by domain.
	googleFaviconAPI = "https://www.google.com/s2/favicons"

	// maxIconBytes caps imported and uploaded icon images.
	maxIconBytes = 1 << 20

	iconFetchTimeout = 10 * time.Second
)

// allowedIconTypes lists the image content types accepted for import and
// upload, mapped to the file extension used in generated references.
var allowedIconTypes = map[string]string{
	"image/png":                "png",
	"image/jpeg":               "jpg",
	"image/gif":                "gif",
	"image/webp":               "webp",
	"image/svg+xml":            "svg",
	"image/x-icon":             "ico",
	"image/vnd.microsoft.icon": "ico",
}

var slugCleaner = regexp.MustCompile(`[^a-z0-9-]+`)

// iconService is the concrete implementation of [IconService]. Suggestions
// probe public icon sources; imports download through a bounded HTTP client
// and store the bytes in the database next to the vault item.
type iconService struct {
	iconRepository store.IconRepository
	client         *resty.Client
	logger         *logger.Logger
}

// NewIconService constructs an [IconService] with its own outbound HTTP
// client.
func NewIconService(iconRepository store.IconRepository, logger *logger.Logger) IconService {
	cli := resty.New().
		SetTimeout(iconFetchTimeout).
		SetRedirectPolicy(resty.FlexibleRedirectPolicy(5))

	return &iconService{
		iconRepository: iconRepository,
		client:         cli,
		logger:         logger,
	}
}

// SuggestIcons implements [IconService]. The display name is slugified and
// probed against the dashboard-icons CDN with a HEAD request; when the name
// looks like a domain, favicon candidates are appended as fallbacks.
func (s *iconService) SuggestIcons(ctx context.Context, name string) ([]models.IconCandidate, error) {
	log := logger.FromContext(ctx)

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrInvalidDataProvided
	}

	candidates := make([]models.IconCandidate, 0, 4)

	slug := slugify(name)
	if slug != "" {
		iconURL := fmt.Sprintf("%s/png/%s.png", dashboardIconsCDN, slug)
		resp, err := s.client.R().SetContext(ctx).Head(iconURL)
		if err != nil {
			log.Warn().Err(err).Str("slug", slug).Msg("dashboard-icons probe failed")
		} else if resp.StatusCode() == http.StatusOK {
			candidates = append(candidates,
				models.IconCandidate{URL: iconURL, Source: "dashboard-icons", Slug: slug},
				models.IconCandidate{URL: fmt.Sprintf("%s/svg/%s.svg", dashboardIconsCDN, slug), Source: "dashboard-icons", Slug: slug},
			)
		}
	}

	if domain := extractDomain(name); domain != "" {
		candidates = append(candidates,
			models.IconCandidate{
				URL:    fmt.Sprintf("https://%s/favicon.ico", domain),
				Source: "favicon",
			},
			models.IconCandidate{
				URL:    fmt.Sprintf("%s?domain=%s&sz=64", googleFaviconAPI, url.QueryEscape(domain)),
				Source: "google-s2",
			},
		)
	}

	return candidates, nil
}

// ImportIcon implements [IconService].
func (s *iconService) ImportIcon(ctx context.Context, userID, itemID uuid.UUID, rawURL string) (models.VaultItem, error) {
	log := logger.FromContext(ctx)

	parsed, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return models.VaultItem{}, ErrInvalidIconURL
	}

	resp, err := s.client.R().SetContext(ctx).Get(parsed.String())
	if err != nil {
		log.Warn().Err(err).Str("url", parsed.String()).Msg("icon download failed")
		return models.VaultItem{}, fmt.Errorf("%w: %w", ErrIconFetchFailed, err)
	}
	if resp.StatusCode() != http.StatusOK {
		return models.VaultItem{}, fmt.Errorf("%w: unexpected status %d", ErrIconFetchFailed, resp.StatusCode())
	}

	contentType := normalizeContentType(resp.Header().Get("Content-Type"))
	data := resp.Body()

	return s.saveIcon(ctx, userID, itemID, contentType, data)
}

// UploadIcon implements [IconService].
func (s *iconService) UploadIcon(ctx context.Context, userID, itemID uuid.UUID, contentType string, data []byte) (models.VaultItem, error) {
	return s.saveIcon(ctx, userID, itemID, normalizeContentType(contentType), data)
}

// GetIcon implements [IconService].
func (s *iconService) GetIcon(ctx context.Context, userID uuid.UUID, iconRef string) (models.VaultIcon, error) {
	icon, err := s.iconRepository.GetIconByRef(ctx, userID, iconRef)
	if err != nil {
		return models.VaultIcon{}, fmt.Errorf("icon lookup ended with error: %w", err)
	}

	return icon, nil
}

// saveIcon enforces the shared limits and persists the icon under a freshly
// minted reference.
func (s *iconService) saveIcon(ctx context.Context, userID, itemID uuid.UUID, contentType string, data []byte) (models.VaultItem, error) {
	log := logger.FromContext(ctx)

	ext, ok := allowedIconTypes[contentType]
	if !ok {
		return models.VaultItem{}, ErrUnsupportedIconType
	}
	if len(data) == 0 {
		return models.VaultItem{}, ErrInvalidDataProvided
	}
	if len(data) > maxIconBytes {
		return models.VaultItem{}, ErrIconTooLarge
	}

	icon := models.VaultIcon{
		VaultItemID: itemID,
		UserID:      userID,
		IconRef:     fmt.Sprintf("%s.%s", uuid.NewString(), ext),
		ContentType: contentType,
		Data:        data,
	}

	item, err := s.iconRepository.SaveIcon(ctx, icon)
	if err != nil {
		log.Err(err).Str("item", itemID.String()).Msg("icon save ended with error")
		return models.VaultItem{}, fmt.Errorf("icon save ended with error: %w", err)
	}

	return item, nil
}

// slugify converts a display name to a dashboard-icons slug: lowercase,
// spaces to dashes, everything outside [a-z0-9-] dropped.
func slugify(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	slug = strings.ReplaceAll(slug, " ", "-")
	slug = slugCleaner.ReplaceAllString(slug, "")
	return strings.Trim(slug, "-")
}

// extractDomain pulls a plausible hostname out of a display name or URL.
func extractDomain(name string) string {
	candidate := strings.TrimSpace(name)
	if strings.Contains(candidate, "://") {
		if parsed, err := url.Parse(candidate); err == nil {
			return parsed.Hostname()
		}
		return ""
	}
	if strings.Contains(candidate, ".") && !strings.ContainsAny(candidate, " /") {
		return strings.ToLower(candidate)
	}
	return ""
}

// normalizeContentType strips charset parameters and lowercases the type.
func normalizeContentType(contentType string) string {
	contentType = strings.TrimSpace(strings.ToLower(contentType))
	if idx := strings.IndexByte(contentType, ';'); idx >= 0 {
		contentType = strings.TrimSpace(contentType[:idx])
	}
	return contentType
}
