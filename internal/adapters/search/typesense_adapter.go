package search

import (
	"context"
	"fmt"
	"time"

	"github.com/typesense/typesense-go/v2/typesense/api"
	"github.com/typesense/typesense-go/v2/typesense/api/pointer"

	"github.com/Jin-yujin/doctorpay-backend/internal/domain/entities"
	"github.com/Jin-yujin/doctorpay-backend/internal/domain/repositories"
	tsclient "github.com/Jin-yujin/doctorpay-backend/internal/infrastructure/clients/typesense"
)

// TypesenseAdapter implements hospital typeahead search using Typesense
type TypesenseAdapter struct {
	client *tsclient.Client
}

var _ repositories.HospitalSearchRepository = (*TypesenseAdapter)(nil)

// NewTypesenseAdapter creates a new Typesense adapter
func NewTypesenseAdapter(client *tsclient.Client) *TypesenseAdapter {
	return &TypesenseAdapter{client: client}
}

// Index upserts one aggregate into the hospitals collection
func (a *TypesenseAdapter) Index(ctx context.Context, hospital *entities.HospitalInfo) error {
	if hospital.Ykiho == "" {
		return fmt.Errorf("cannot index hospital without ykiho")
	}

	document := map[string]interface{}{
		"id":            hospital.Ykiho,
		"name":          hospital.Name,
		"address":       hospital.Address,
		"facility_type": hospital.FacilityType,
		"departments":   hospital.Departments,
		"indexed_at":    time.Now().Unix(),
	}
	if hospital.HasLocation() {
		document["location"] = []float64{hospital.Latitude, hospital.Longitude}
	}

	_, err := a.client.Client().Collection(tsclient.HospitalsCollection).Documents().Upsert(ctx, document)
	if err != nil {
		return fmt.Errorf("failed to index hospital: %w", err)
	}
	return nil
}

// Suggest returns name matches for typeahead
func (a *TypesenseAdapter) Suggest(ctx context.Context, query string, limit int) ([]*entities.HospitalInfo, error) {
	if limit <= 0 {
		limit = 10
	}

	searchParams := &api.SearchCollectionParams{
		Q:       pointer.String(query),
		QueryBy: pointer.String("name,address"),
		Page:    pointer.Int(1),
		PerPage: pointer.Int(limit),
	}

	result, err := a.client.Client().Collection(tsclient.HospitalsCollection).Documents().Search(ctx, searchParams)
	if err != nil {
		return nil, fmt.Errorf("failed to search hospitals: %w", err)
	}
	if result.Hits == nil {
		return nil, nil
	}

	hospitals := make([]*entities.HospitalInfo, 0, len(*result.Hits))
	for _, hit := range *result.Hits {
		if hit.Document == nil {
			continue
		}
		doc := *hit.Document

		hospital := &entities.HospitalInfo{
			Ykiho:        stringField(doc, "id"),
			Name:         stringField(doc, "name"),
			Address:      stringField(doc, "address"),
			FacilityType: stringField(doc, "facility_type"),
			Departments:  stringSliceField(doc, "departments"),
		}
		if loc, ok := doc["location"].([]interface{}); ok && len(loc) == 2 {
			hospital.Latitude, _ = loc[0].(float64)
			hospital.Longitude, _ = loc[1].(float64)
		}
		hospitals = append(hospitals, hospital)
	}
	return hospitals, nil
}

// Delete removes a hospital from the index
func (a *TypesenseAdapter) Delete(ctx context.Context, ykiho string) error {
	_, err := a.client.Client().Collection(tsclient.HospitalsCollection).Document(ykiho).Delete(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete hospital from index: %w", err)
	}
	return nil
}

func stringField(doc map[string]interface{}, key string) string {
	value, _ := doc[key].(string)
	return value
}

func stringSliceField(doc map[string]interface{}, key string) []string {
	raw, ok := doc[key].([]interface{})
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
