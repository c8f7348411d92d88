package faqs

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/nexofaq/nexofaq-backend/pkg/db"
	"github.com/nexofaq/nexofaq-backend/pkg/db/models"
	pkgerrors "github.com/nexofaq/nexofaq-backend/pkg/errors"
	"github.com/nexofaq/nexofaq-backend/pkg/logger"
	"gorm.io/gorm"
)

const maxTitleLength = 255

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service owns the FAQ aggregate: FAQ and question CRUD for store owners,
// plus the public resolution queries storefront widgets call. At most one FAQ
// per store carries the homepage flag; flag hand-off clears the previous
// holder inside the same transaction.
type Service interface {
	List(ctx context.Context, storeID uint64) ([]FaqDTO, error)
	Get(ctx context.Context, storeID, faqID uint64) (*FaqDTO, error)
	Create(ctx context.Context, storeID uint64, input CreateFaqDTO) (*FaqDTO, error)
	Update(ctx context.Context, storeID, faqID uint64, input UpdateFaqDTO) (*FaqDTO, error)
	Delete(ctx context.Context, storeID, faqID uint64) error

	AddQuestion(ctx context.Context, storeID, faqID uint64, input AddQuestionDTO) (*QuestionDTO, error)
	UpdateQuestion(ctx context.Context, storeID, questionID uint64, input UpdateQuestionDTO) (*QuestionDTO, error)
	DeleteQuestion(ctx context.Context, storeID, questionID uint64) error

	ResolveByProduct(ctx context.Context, storeID, productID uint64) (*PublicFaqDTO, error)
	ResolveByCategory(ctx context.Context, storeID uint64, categoryHandle string) (*PublicFaqDTO, error)
	ResolveHomepage(ctx context.Context, storeID uint64) (*PublicFaqDTO, error)
	CheckProduct(ctx context.Context, storeID, productID uint64) (*CheckResultDTO, error)
	CheckCategory(ctx context.Context, storeID uint64, categoryHandle string) (*CheckResultDTO, error)
	CheckHomepage(ctx context.Context, storeID uint64) (*CheckResultDTO, error)
}

type service struct {
	repo FaqRepository
	tx   txRunner
	logg *logger.Logger
}

// NewService builds a FAQ service with the provided dependencies. The logger
// is optional.
func NewService(repo FaqRepository, tx txRunner, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("faq repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{repo: repo, tx: tx, logg: logg}, nil
}

func (s *service) List(ctx context.Context, storeID uint64) ([]FaqDTO, error) {
	if storeID == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "store id is required")
	}

	rows, err := s.repo.ListByStore(ctx, storeID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list faqs")
	}
	out := make([]FaqDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *FromModel(&rows[i]))
	}
	return out, nil
}

func (s *service) Get(ctx context.Context, storeID, faqID uint64) (*FaqDTO, error) {
	if storeID == 0 || faqID == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "store and faq ids are required")
	}

	faq, err := s.repo.FindByID(ctx, storeID, faqID)
	if err != nil {
		return nil, faqLookupError(err)
	}
	return FromModel(faq), nil
}

func (s *service) Create(ctx context.Context, storeID uint64, input CreateFaqDTO) (*FaqDTO, error) {
	if storeID == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "store id is required")
	}
	title, err := normalizeTitle(input.Title)
	if err != nil {
		return nil, err
	}

	faq := &models.Faq{
		StoreID:        storeID,
		Title:          title,
		Active:         true,
		ShowOnHomepage: false,
	}
	if input.Active != nil {
		faq.Active = *input.Active
	}
	if input.ShowOnHomepage != nil {
		faq.ShowOnHomepage = *input.ShowOnHomepage
	}

	var dto *FaqDTO
	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if faq.ShowOnHomepage {
			if err := repo.ClearHomepageExcept(ctx, storeID, 0); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clear homepage flags")
			}
		}
		if err := repo.Create(ctx, faq); err != nil {
			if db.IsUniqueViolation(err, "faqs_store_homepage_key") {
				return pkgerrors.Wrap(pkgerrors.CodeConflict, err, "homepage flag raced")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create faq")
		}
		// reload inside the transaction so the response cannot pick up a
		// concurrent write committed after ours
		created, err := repo.FindByID(ctx, storeID, faq.ID)
		if err != nil {
			return faqLookupError(err)
		}
		dto = FromModel(created)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

func (s *service) Update(ctx context.Context, storeID, faqID uint64, input UpdateFaqDTO) (*FaqDTO, error) {
	if storeID == 0 || faqID == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "store and faq ids are required")
	}
	if input.Title != nil {
		title, err := normalizeTitle(*input.Title)
		if err != nil {
			return nil, err
		}
		input.Title = &title
	}

	var dto *FaqDTO
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		faq, err := repo.FindByID(ctx, storeID, faqID)
		if err != nil {
			return faqLookupError(err)
		}
		if input.Title != nil {
			faq.Title = *input.Title
		}
		if input.Active != nil {
			faq.Active = *input.Active
		}
		if input.ShowOnHomepage != nil {
			faq.ShowOnHomepage = *input.ShowOnHomepage
		}
		if faq.ShowOnHomepage {
			if err := repo.ClearHomepageExcept(ctx, storeID, faq.ID); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clear homepage flags")
			}
		}
		if err := repo.Save(ctx, faq); err != nil {
			if db.IsUniqueViolation(err, "faqs_store_homepage_key") {
				return pkgerrors.Wrap(pkgerrors.CodeConflict, err, "homepage flag raced")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update faq")
		}
		updated, err := repo.FindByID(ctx, storeID, faqID)
		if err != nil {
			return faqLookupError(err)
		}
		dto = FromModel(updated)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

func (s *service) Delete(ctx context.Context, storeID, faqID uint64) error {
	if storeID == 0 || faqID == 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "store and faq ids are required")
	}

	return s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		faq, err := repo.FindByID(ctx, storeID, faqID)
		if err != nil {
			return faqLookupError(err)
		}
		if err := repo.DeleteCascade(ctx, faq); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete faq")
		}
		return nil
	})
}

func (s *service) AddQuestion(ctx context.Context, storeID, faqID uint64, input AddQuestionDTO) (*QuestionDTO, error) {
	if storeID == 0 || faqID == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "store and faq ids are required")
	}
	question := strings.TrimSpace(input.Question)
	answer := strings.TrimSpace(input.Answer)
	if question == "" || answer == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "question and answer are required")
	}

	if _, err := s.repo.FindByID(ctx, storeID, faqID); err != nil {
		return nil, faqLookupError(err)
	}

	row := &models.FaqQuestion{FaqID: faqID, Question: question, Answer: answer}
	if input.Order != nil {
		row.Order = *input.Order
	}
	if err := s.repo.CreateQuestion(ctx, row); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create question")
	}
	return questionFromModel(row), nil
}

func (s *service) UpdateQuestion(ctx context.Context, storeID, questionID uint64, input UpdateQuestionDTO) (*QuestionDTO, error) {
	if storeID == 0 || questionID == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "store and question ids are required")
	}

	row, err := s.repo.FindQuestionScoped(ctx, storeID, questionID)
	if err != nil {
		return nil, questionLookupError(err)
	}
	if input.Question != nil {
		trimmed := strings.TrimSpace(*input.Question)
		if trimmed == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "question must not be empty")
		}
		row.Question = trimmed
	}
	if input.Answer != nil {
		trimmed := strings.TrimSpace(*input.Answer)
		if trimmed == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "answer must not be empty")
		}
		row.Answer = trimmed
	}
	if input.Order != nil {
		row.Order = *input.Order
	}
	if err := s.repo.SaveQuestion(ctx, row); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update question")
	}
	return questionFromModel(row), nil
}

func (s *service) DeleteQuestion(ctx context.Context, storeID, questionID uint64) error {
	if storeID == 0 || questionID == 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "store and question ids are required")
	}

	deleted, err := s.repo.DeleteQuestionScoped(ctx, storeID, questionID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete question")
	}
	if deleted == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "question not found")
	}
	return nil
}

func (s *service) ResolveByProduct(ctx context.Context, storeID, productID uint64) (*PublicFaqDTO, error) {
	if storeID == 0 || productID == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "store and product ids are required")
	}

	rows, err := s.repo.FindActiveByProduct(ctx, storeID, productID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "resolve faq by product")
	}
	return s.pickResolved(ctx, storeID, rows, "product")
}

func (s *service) ResolveByCategory(ctx context.Context, storeID uint64, categoryHandle string) (*PublicFaqDTO, error) {
	categoryHandle = strings.TrimSpace(categoryHandle)
	if storeID == 0 || categoryHandle == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "store id and category handle are required")
	}

	rows, err := s.repo.FindActiveByCategoryHandle(ctx, storeID, categoryHandle)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "resolve faq by category")
	}
	return s.pickResolved(ctx, storeID, rows, "category")
}

func (s *service) ResolveHomepage(ctx context.Context, storeID uint64) (*PublicFaqDTO, error) {
	if storeID == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "store id is required")
	}

	rows, err := s.repo.FindActiveHomepage(ctx, storeID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "resolve homepage faq")
	}
	return s.pickResolved(ctx, storeID, rows, "homepage")
}

func (s *service) CheckProduct(ctx context.Context, storeID, productID uint64) (*CheckResultDTO, error) {
	return s.check(s.ResolveByProduct(ctx, storeID, productID))
}

func (s *service) CheckCategory(ctx context.Context, storeID uint64, categoryHandle string) (*CheckResultDTO, error) {
	return s.check(s.ResolveByCategory(ctx, storeID, categoryHandle))
}

func (s *service) CheckHomepage(ctx context.Context, storeID uint64) (*CheckResultDTO, error) {
	return s.check(s.ResolveHomepage(ctx, storeID))
}

// pickResolved takes the lowest-id match. More than one match means a binding
// invariant slipped; it is logged and the first row still wins so storefronts
// keep rendering.
func (s *service) pickResolved(ctx context.Context, storeID uint64, rows []models.Faq, lookup string) (*PublicFaqDTO, error) {
	if len(rows) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "faq not found")
	}
	if len(rows) > 1 && s.logg != nil {
		s.logg.Warn(s.logg.WithFields(s.logg.WithStoreID(ctx, storeID), map[string]any{
			"lookup":  lookup,
			"matches": len(rows),
		}), "multiple faqs matched a public lookup")
	}
	return PublicFromModel(&rows[0]), nil
}

func (s *service) check(dto *PublicFaqDTO, err error) (*CheckResultDTO, error) {
	if err != nil {
		if typed := pkgerrors.As(err); typed != nil && typed.Code() == pkgerrors.CodeNotFound {
			return &CheckResultDTO{Exists: false}, nil
		}
		return nil, err
	}
	return &CheckResultDTO{Exists: true, Data: dto}, nil
}

func normalizeTitle(title string) (string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "title is required")
	}
	if len(title) > maxTitleLength {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "title must be at most 255 characters")
	}
	return title, nil
}

func faqLookupError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.New(pkgerrors.CodeNotFound, "faq not found")
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load faq")
}

func questionLookupError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.New(pkgerrors.CodeNotFound, "question not found")
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load question")
}
