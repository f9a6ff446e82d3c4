package bigquery

import (
	"cloud.google.com/go/bigquery"
	"cloud.google.com/go/civil"
)

const recommendationsTable = "recommendations"

// RecommendationRow mirrors the recommendations table schema. Useful is
// tri-state: NULL means the user has not evaluated the recommendation yet,
// which is also how every new row starts out.
type RecommendationRow struct {
	RecommendationID string `bigquery:"recommendation_id"` // REQUIRED

	UID         string `bigquery:"uid"`         // REQUIRED
	Title       string `bigquery:"title"`       // REQUIRED, <= 100 chars
	Description string `bigquery:"description"` // REQUIRED, <= 280 chars
	Type        string `bigquery:"type"`        // REQUIRED, fixed enum

	Useful bigquery.NullBool `bigquery:"useful"` // NULLABLE
	Date   civil.Date        `bigquery:"date"`   // REQUIRED DATE
}
