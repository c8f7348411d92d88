package faqs

import (
	"time"

	"github.com/nexofaq/nexofaq-backend/internal/bindings"
	"github.com/nexofaq/nexofaq-backend/pkg/db/models"
)

// FaqDTO is the full management-side representation of a FAQ.
type FaqDTO struct {
	ID               uint64                        `json:"id"`
	StoreID          uint64                        `json:"store_id"`
	Title            string                        `json:"title"`
	Active           bool                          `json:"active"`
	ShowOnHomepage   bool                          `json:"show_on_homepage"`
	Questions        []QuestionDTO                 `json:"questions"`
	ProductBindings  []bindings.ProductBindingDTO  `json:"product_bindings"`
	CategoryBindings []bindings.CategoryBindingDTO `json:"category_bindings"`
	CreatedAt        time.Time                     `json:"created_at"`
	UpdatedAt        time.Time                     `json:"updated_at"`
}

// QuestionDTO is a single question and answer pair.
type QuestionDTO struct {
	ID        uint64    `json:"id"`
	FaqID     uint64    `json:"faq_id"`
	Question  string    `json:"question"`
	Answer    string    `json:"answer"`
	Order     int       `json:"order"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateFaqDTO carries the fields accepted when creating a FAQ. Optional
// flags default to active=true and show_on_homepage=false.
type CreateFaqDTO struct {
	Title          string `json:"title" validate:"required,max=255"`
	Active         *bool  `json:"active"`
	ShowOnHomepage *bool  `json:"show_on_homepage"`
}

// UpdateFaqDTO is an explicit patch: nil fields are left untouched.
type UpdateFaqDTO struct {
	Title          *string `json:"title" validate:"omitempty,max=255"`
	Active         *bool   `json:"active"`
	ShowOnHomepage *bool   `json:"show_on_homepage"`
}

// AddQuestionDTO carries a new question for a FAQ.
type AddQuestionDTO struct {
	Question string `json:"question" validate:"required"`
	Answer   string `json:"answer" validate:"required"`
	Order    *int   `json:"order"`
}

// UpdateQuestionDTO is an explicit patch for a question.
type UpdateQuestionDTO struct {
	Question *string `json:"question"`
	Answer   *string `json:"answer"`
	Order    *int    `json:"order"`
}

// PublicFaqDTO is the reduced projection served to storefront widgets.
type PublicFaqDTO struct {
	ID        uint64              `json:"id"`
	Title     string              `json:"title"`
	Active    bool                `json:"active"`
	Questions []PublicQuestionDTO `json:"questions"`
}

// PublicQuestionDTO strips a question down to its displayed pair.
type PublicQuestionDTO struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// CheckResultDTO is the exists-probe response shape.
type CheckResultDTO struct {
	Exists bool          `json:"exists"`
	Data   *PublicFaqDTO `json:"data"`
}

// FromModel maps a loaded FAQ row and its children to the management DTO.
func FromModel(faq *models.Faq) *FaqDTO {
	dto := &FaqDTO{
		ID:               faq.ID,
		StoreID:          faq.StoreID,
		Title:            faq.Title,
		Active:           faq.Active,
		ShowOnHomepage:   faq.ShowOnHomepage,
		Questions:        make([]QuestionDTO, 0, len(faq.Questions)),
		ProductBindings:  make([]bindings.ProductBindingDTO, 0, len(faq.ProductBindings)),
		CategoryBindings: make([]bindings.CategoryBindingDTO, 0, len(faq.CategoryBindings)),
		CreatedAt:        faq.CreatedAt,
		UpdatedAt:        faq.UpdatedAt,
	}
	for i := range faq.Questions {
		dto.Questions = append(dto.Questions, *questionFromModel(&faq.Questions[i]))
	}
	for i := range faq.ProductBindings {
		dto.ProductBindings = append(dto.ProductBindings, *bindings.FromProductModel(&faq.ProductBindings[i]))
	}
	for i := range faq.CategoryBindings {
		dto.CategoryBindings = append(dto.CategoryBindings, *bindings.FromCategoryModel(&faq.CategoryBindings[i]))
	}
	return dto
}

func questionFromModel(question *models.FaqQuestion) *QuestionDTO {
	return &QuestionDTO{
		ID:        question.ID,
		FaqID:     question.FaqID,
		Question:  question.Question,
		Answer:    question.Answer,
		Order:     question.Order,
		CreatedAt: question.CreatedAt,
		UpdatedAt: question.UpdatedAt,
	}
}

// PublicFromModel maps a FAQ row to the storefront projection.
func PublicFromModel(faq *models.Faq) *PublicFaqDTO {
	dto := &PublicFaqDTO{
		ID:        faq.ID,
		Title:     faq.Title,
		Active:    faq.Active,
		Questions: make([]PublicQuestionDTO, 0, len(faq.Questions)),
	}
	for i := range faq.Questions {
		dto.Questions = append(dto.Questions, PublicQuestionDTO{
			Question: faq.Questions[i].Question,
			Answer:   faq.Questions[i].Answer,
		})
	}
	return dto
}
