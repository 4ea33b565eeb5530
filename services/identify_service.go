package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"snaphistory/models"
	"snaphistory/utils/errors"
)

const (
	imageFetchTimeout = 20 * time.Second
	resultCacheTTL    = 24 * time.Hour

	// Shown when no summary extract could be found for the place.
	descriptionPlaceholder = "I found this place, but couldn't locate a detailed history."
)

// IdentifyService runs the identification pipeline for one image: EXIF GPS,
// recognition, candidate resolution, reverse geocoding, summary lookup and
// narrative composition. The upstream calls are strictly sequential; only
// auth, input presence and the recognition call itself can fail the request,
// everything else degrades into null fields.
//
// Results are cached by image hash when Redis is configured, and appended to
// the history trail when Mongo is configured.
type IdentifyService struct {
	exif      *ExifService
	vision    *VisionService
	geocoder  *GeocodeService
	wiki      *WikiService
	narrative *NarrativeService
	history   *HistoryService

	httpClient  *http.Client
	redisClient *redis.Client
	logger      *zap.Logger
}

func NewIdentifyService(
	exif *ExifService,
	vision *VisionService,
	geocoder *GeocodeService,
	wiki *WikiService,
	narrative *NarrativeService,
	history *HistoryService,
	redisClient *redis.Client,
	logger *zap.Logger,
) *IdentifyService {
	return &IdentifyService{
		exif:        exif,
		vision:      vision,
		geocoder:    geocoder,
		wiki:        wiki,
		narrative:   narrative,
		history:     history,
		httpClient:  &http.Client{Timeout: imageFetchTimeout},
		redisClient: redisClient,
		logger:      logger,
	}
}

// FetchImage downloads the image at a caller-supplied URL. Unlike the
// enrichment lookups, a failure here is a hard request error.
func (s *IdentifyService) FetchImage(ctx context.Context, imageURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrUpstreamFetch.Code, errors.ErrUpstreamFetch.Message, errors.ErrUpstreamFetch.Status)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrUpstreamFetch.Code, errors.ErrUpstreamFetch.Message, errors.ErrUpstreamFetch.Status)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, errors.NewAPIError(errors.ErrUpstreamFetch.Code, errors.ErrUpstreamFetch.Message, errors.ErrUpstreamFetch.Status,
			fmt.Sprintf("unexpected status %s", resp.Status))
	}

	image, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrUpstreamFetch.Code, errors.ErrUpstreamFetch.Message, errors.ErrUpstreamFetch.Status)
	}
	return image, nil
}

// Identify produces a best-effort place record for the image.
func (s *IdentifyService) Identify(ctx context.Context, image []byte) (*models.PlaceRecord, error) {
	hash := sha256.Sum256(image)
	imageHash := hex.EncodeToString(hash[:])
	cacheKey := "identify:" + imageHash

	if record := s.cachedRecord(ctx, cacheKey); record != nil {
		return record, nil
	}

	exifCoords := s.exif.ExtractGPS(image)

	visionResult, err := s.vision.Annotate(ctx, image)
	if err != nil {
		return nil, err
	}

	candidate := ResolveCandidate(visionResult, exifCoords)

	var country string
	if candidate.Coordinates != nil {
		if rev, err := s.geocoder.Reverse(ctx, candidate.Coordinates.Lat, candidate.Coordinates.Lon); err != nil {
			s.logger.Warn("reverse geocode failed", zap.Error(err))
		} else {
			country = rev.Country
			if candidate.Title == "" {
				candidate.Title = rev.Name
			}
		}
	}

	var summary WikiSummary
	if candidate.Title != "" {
		summary = s.wiki.Summary(ctx, candidate.Title, country)
	}

	record := s.buildRecord(candidate, country, summary)

	s.cacheRecord(ctx, cacheKey, record)
	s.history.Record(ctx, models.Identification{
		ID:        uuid.New().String(),
		ImageHash: imageHash,
		Place:     *record,
		CreatedAt: time.Now().UTC(),
	})
	return record, nil
}

// buildRecord assembles the response from whatever the pipeline managed to
// resolve. Mood is classified over the title plus the raw extract; the
// description placeholder never influences it.
func (s *IdentifyService) buildRecord(candidate models.Candidate, country string, summary WikiSummary) *models.PlaceRecord {
	record := &models.PlaceRecord{
		Coordinates: candidate.Coordinates,
		Description: descriptionPlaceholder,
		Sources:     []string{},
	}

	if candidate.Title != "" {
		record.Title = &candidate.Title
	}
	if country != "" {
		record.Country = &country
	}
	if candidate.Confidence > 0 {
		confidence := RoundConfidence(candidate.Confidence)
		record.Confidence = &confidence
	}

	if summary.Extract != "" {
		record.Description = summary.Extract
		if year := s.narrative.ExtractYear(summary.Extract); year != "" {
			record.YearBuilt = &year
		}
		if architect := s.narrative.ExtractArchitect(summary.Extract); architect != "" {
			record.Architect = &architect
		}
	}
	if pageURL := summary.PageURL(); pageURL != "" {
		record.WikiURL = &pageURL
		record.Sources = []string{pageURL}
	}
	if credit := summary.ImageCredit(); credit != "" {
		record.ImageCredit = &credit
	}

	record.Mood = s.narrative.DetectMood(candidate.Title + " " + summary.Extract)
	record.EchoOfTime = s.narrative.EchoOfTime(record.Mood)
	return record
}

// cachedRecord looks up a previously computed record by image hash. Cache
// misses and read errors are equivalent.
func (s *IdentifyService) cachedRecord(ctx context.Context, key string) *models.PlaceRecord {
	if s.redisClient == nil {
		return nil
	}

	raw, err := s.redisClient.Get(ctx, key).Result()
	if err != nil {
		if err != redis.Nil {
			s.logger.Warn("result cache read failed", zap.Error(err))
		}
		return nil
	}

	var record models.PlaceRecord
	if err := json.Unmarshal([]byte(raw), &record); err != nil {
		s.logger.Warn("result cache entry corrupt", zap.String("key", key), zap.Error(err))
		return nil
	}
	return &record
}

func (s *IdentifyService) cacheRecord(ctx context.Context, key string, record *models.PlaceRecord) {
	if s.redisClient == nil {
		return
	}
	raw, err := json.Marshal(record)
	if err != nil {
		return
	}
	if err := s.redisClient.Set(ctx, key, raw, resultCacheTTL).Err(); err != nil {
		s.logger.Warn("result cache write failed", zap.Error(err))
	}
}
