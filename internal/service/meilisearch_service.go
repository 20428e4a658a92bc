package service

import (
	"encoding/json"
	"fmt"
	"html"
	"log"
	"strings"

	"github.com/meilisearch/meilisearch-go"
	"github.com/microcosm-cc/bluemonday"
	"github.com/shopspring/decimal"

	"aimrealty.com/estateapi/internal/model"
)

const propertyIndex = "properties"

type MeiliSearchService interface {
	IndexProperty(property *model.Property) error
	DeleteProperty(id string) error
	Search(query string, filter map[string]string, limit int) ([]string, int64, error)
}

type meiliSearchService struct {
	client    meilisearch.ServiceManager
	sanitizer *bluemonday.Policy
}

func NewMeiliSearchService(client meilisearch.ServiceManager) MeiliSearchService {
	s := &meiliSearchService{
		client:    client,
		sanitizer: bluemonday.StrictPolicy(),
	}
	s.initIndexes()
	return s
}

func (s *meiliSearchService) initIndexes() {
	filterableAttrs := []string{"language", "listing_type", "type", "city", "status"}
	filterableInterface := make([]any, len(filterableAttrs))
	for i, v := range filterableAttrs {
		filterableInterface[i] = v
	}
	if _, err := s.client.Index(propertyIndex).UpdateFilterableAttributes(&filterableInterface); err != nil {
		log.Printf("Failed to update property filterable attributes: %v", err)
	}

	sortableAttrs := []string{"created_at", "price", "views"}
	if _, err := s.client.Index(propertyIndex).UpdateSortableAttributes(&sortableAttrs); err != nil {
		log.Printf("Failed to update property sortable attributes: %v", err)
	}
}

type meiliPropertyDoc struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Slug        string   `json:"slug"`
	Type        string   `json:"type"`
	ListingType string   `json:"listing_type"`
	Price       float64  `json:"price"`
	Currency    string   `json:"currency"`
	City        string   `json:"city"`
	Country     string   `json:"country"`
	Language    string   `json:"language"`
	Status      string   `json:"status"`
	Amenities   []string `json:"amenities"`
	Views       int      `json:"views"`
	CreatedAt   int64    `json:"created_at"`
}

func (s *meiliSearchService) cleanContentForIndex(content string) string {
	content = strings.ReplaceAll(content, "</p>", " ")
	content = strings.ReplaceAll(content, "<br>", " ")
	content = strings.ReplaceAll(content, "</div>", " ")

	sanitized := s.sanitizer.Sanitize(content)
	cleanText := html.UnescapeString(sanitized)

	return strings.Join(strings.Fields(cleanText), " ")
}

func (s *meiliSearchService) IndexProperty(property *model.Property) error {
	amenities := make([]string, 0, len(property.Amenities))
	for _, a := range property.Amenities {
		amenities = append(amenities, a.Amenity)
	}

	doc := meiliPropertyDoc{
		ID:          property.ID.String(),
		Title:       property.Title,
		Description: s.cleanContentForIndex(property.Description),
		Type:        property.Type,
		ListingType: property.ListingType,
		Price:       priceForIndex(property.Price),
		Currency:    property.Currency,
		City:        property.City,
		Country:     property.Country,
		Language:    property.Language,
		Status:      property.Status,
		Amenities:   amenities,
		Views:       property.Views,
		CreatedAt:   property.CreatedAt.Unix(),
	}
	if property.Slug != nil {
		doc.Slug = *property.Slug
	}

	task, err := s.client.Index(propertyIndex).AddDocuments([]meiliPropertyDoc{doc}, strPtr("id"))
	if err != nil {
		return err
	}
	log.Printf("Indexed property %s, task id: %d", property.ID, task.TaskUID)
	return nil
}

func (s *meiliSearchService) DeleteProperty(id string) error {
	_, err := s.client.Index(propertyIndex).DeleteDocument(id)
	return err
}

// Search returns matching property IDs plus the estimated total. Rows are
// reloaded from the database afterwards so clients always get the full
// nested object.
func (s *meiliSearchService) Search(query string, filter map[string]string, limit int) ([]string, int64, error) {
	filters := []string{fmt.Sprintf("status = %q", model.PropertyStatusActive)}
	for key, value := range filter {
		if value == "" {
			continue
		}
		filters = append(filters, fmt.Sprintf("%s = %q", key, value))
	}

	resp, err := s.client.Index(propertyIndex).Search(query, &meilisearch.SearchRequest{
		Filter: strings.Join(filters, " AND "),
		Limit:  int64(limit),
	})
	if err != nil {
		return nil, 0, err
	}

	return hitIDs(resp.Hits), resp.EstimatedTotalHits, nil
}

// hitIDs pulls the document id out of each raw hit. Hits with a missing or
// non-string id are skipped rather than failing the whole search.
func hitIDs(hits []meilisearch.Hit) []string {
	ids := make([]string, 0, len(hits))
	for _, hit := range hits {
		raw, ok := hit["id"]
		if !ok {
			continue
		}
		var id string
		if err := json.Unmarshal(raw, &id); err != nil || id == "" {
			continue
		}
		ids = append(ids, id)
	}
	return ids
}

// priceForIndex keeps exact decimals out of the index; meilisearch only
// needs an approximate value for display and range filters.
func priceForIndex(price decimal.Decimal) float64 {
	f, _ := price.Float64()
	return f
}

func strPtr(s string) *string {
	return &s
}
