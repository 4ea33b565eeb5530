package services

import (
	"math"

	"snaphistory/models"
)

// defaultWebEntityConfidence is assigned when the recognizer returns a web
// entity without a relevance score.
const defaultWebEntityConfidence = 0.4

// resolveRule inspects the vision result and may claim the candidate.
// Returning true stops the cascade.
type resolveRule struct {
	name  string
	apply func(models.VisionResult, *models.Candidate) bool
}

// cascade is the fixed-priority fallback order: landmarks, then web
// entities, then labels. The recognizer's ordering is authoritative; only
// the first usable annotation of the winning tier is inspected.
var cascade = []resolveRule{
	{
		name: "landmark",
		apply: func(v models.VisionResult, c *models.Candidate) bool {
			if len(v.Landmarks) == 0 {
				return false
			}
			landmark := v.Landmarks[0]
			c.Title = landmark.Description
			c.Confidence = landmark.Score
			if landmark.Location != nil {
				location := *landmark.Location
				c.Coordinates = &location
			}
			return true
		},
	},
	{
		name: "web-entity",
		apply: func(v models.VisionResult, c *models.Candidate) bool {
			for _, entity := range v.WebEntities {
				if entity.Description == "" {
					continue
				}
				c.Title = entity.Description
				c.Confidence = entity.Score
				if c.Confidence == 0 {
					c.Confidence = defaultWebEntityConfidence
				}
				return true
			}
			return false
		},
	},
	{
		name: "label",
		apply: func(v models.VisionResult, c *models.Candidate) bool {
			if len(v.Labels) == 0 {
				return false
			}
			// A label is a hint only: it supplies a title but no confidence.
			c.Title = v.Labels[0].Description
			return true
		},
	},
}

// ResolveCandidate picks the working title, confidence and coordinates from
// the vision result. EXIF coordinates are kept unless the winning landmark
// carries its own location. A candidate with an empty title is valid; the
// geocoder may still name the place later.
func ResolveCandidate(v models.VisionResult, exifCoords *models.Coordinates) models.Candidate {
	candidate := models.Candidate{Coordinates: exifCoords}
	for _, rule := range cascade {
		if rule.apply(v, &candidate) {
			break
		}
	}
	return candidate
}

// RoundConfidence clamps a score into [0,1] and rounds it to three decimals.
func RoundConfidence(score float64) float64 {
	if score < 0 {
		score = 0
	}
	if score > 1 {
		score = 1
	}
	return math.Round(score*1000) / 1000
}
