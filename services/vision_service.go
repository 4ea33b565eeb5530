package services

import (
	"context"
	"encoding/base64"
	"time"

	"go.uber.org/zap"
	"google.golang.org/api/option"
	vision "google.golang.org/api/vision/v1"

	"snaphistory/models"
	"snaphistory/utils/errors"
)

const visionTimeout = 30 * time.Second

// VisionService requests landmark, label and web-entity detection from the
// Google Vision annotate endpoint. Without an API key the service stays in
// degraded mode: Annotate returns empty results and never calls out.
type VisionService struct {
	svc    *vision.Service
	logger *zap.Logger
}

func NewVisionService(ctx context.Context, apiKey string, logger *zap.Logger) (*VisionService, error) {
	s := &VisionService{logger: logger}
	if apiKey == "" {
		return s, nil
	}

	svc, err := vision.NewService(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, err
	}
	s.svc = svc
	return s, nil
}

// Configured reports whether a recognition credential is present.
func (s *VisionService) Configured() bool {
	return s.svc != nil
}

// Annotate runs recognition over the image: top 3 landmarks, top 5 labels,
// top 5 web entities. A failed call to a configured service is a hard error;
// an unconfigured service yields an empty result.
func (s *VisionService) Annotate(ctx context.Context, image []byte) (models.VisionResult, error) {
	if !s.Configured() {
		s.logger.Debug("recognition key not configured, skipping annotate")
		return models.VisionResult{}, nil
	}

	ctx, cancel := context.WithTimeout(ctx, visionTimeout)
	defer cancel()

	req := &vision.BatchAnnotateImagesRequest{
		Requests: []*vision.AnnotateImageRequest{{
			Image: &vision.Image{Content: base64.StdEncoding.EncodeToString(image)},
			Features: []*vision.Feature{
				{Type: "LANDMARK_DETECTION", MaxResults: 3},
				{Type: "LABEL_DETECTION", MaxResults: 5},
				{Type: "WEB_DETECTION", MaxResults: 5},
			},
		}},
	}

	resp, err := s.svc.Images.Annotate(req).Context(ctx).Do()
	if err != nil {
		s.logger.Error("vision annotate failed", zap.Error(err))
		return models.VisionResult{}, errors.Wrap(err, errors.ErrUpstreamService.Code, errors.ErrUpstreamService.Message, errors.ErrUpstreamService.Status)
	}
	if len(resp.Responses) == 0 {
		return models.VisionResult{}, nil
	}
	return mapAnnotateResponse(resp.Responses[0]), nil
}

// mapAnnotateResponse flattens the wire types into the neutral VisionResult
// consumed by the candidate resolver.
func mapAnnotateResponse(r *vision.AnnotateImageResponse) models.VisionResult {
	var result models.VisionResult
	for _, landmark := range r.LandmarkAnnotations {
		annotation := models.Annotation{Description: landmark.Description, Score: landmark.Score}
		if len(landmark.Locations) > 0 && landmark.Locations[0].LatLng != nil {
			annotation.Location = &models.Coordinates{
				Lat: landmark.Locations[0].LatLng.Latitude,
				Lon: landmark.Locations[0].LatLng.Longitude,
			}
		}
		result.Landmarks = append(result.Landmarks, annotation)
	}
	for _, label := range r.LabelAnnotations {
		result.Labels = append(result.Labels, models.Annotation{Description: label.Description, Score: label.Score})
	}
	if r.WebDetection != nil {
		for _, entity := range r.WebDetection.WebEntities {
			result.WebEntities = append(result.WebEntities, models.Annotation{Description: entity.Description, Score: entity.Score})
		}
	}
	return result
}
