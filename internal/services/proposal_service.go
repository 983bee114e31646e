package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/sjperalta/propostas-api/internal/models"
	"github.com/sjperalta/propostas-api/internal/repository"
	"github.com/sjperalta/propostas-api/pkg/logger"
)

var validate = validator.New()

func init() {
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	// a choice input is selected when it is neither empty nor its placeholder
	_ = validate.RegisterValidation("selected", func(fl validator.FieldLevel) bool {
		v := strings.TrimSpace(fl.Field().String())
		return v != "" && v != models.PartnerPlaceholder && v != models.BankPlaceholder
	})
	_ = validate.RegisterValidation("product", func(fl validator.FieldLevel) bool {
		v := fl.Field().String()
		return v == "" || models.IsProductType(v)
	})
}

// fieldMessages maps field.tag to the message shown for a violation
var fieldMessages = map[string]string{
	"operator.required":       "digitador é obrigatório",
	"reference_code.required": "ADE é obrigatório",
	"client_id.required":      "CPF é obrigatório",
	"date.required":           "data é obrigatória",
	"date.datetime":           "data deve estar no formato AAAA-MM-DD",
	"partner.selected":        "selecione um parceiro",
	"bank.selected":           "selecione um banco",
	"product_type.product":    "tipo de produto inválido",
}

// Amount is a user-typed monetary value. It accepts a JSON string, number or null.
type Amount string

func (a *Amount) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*a = ""
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*a = Amount(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("valor inválido: %s", b)
	}
	*a = Amount(n.String())
	return nil
}

// ProposalInput is the editable content of a proposal
type ProposalInput struct {
	Operator      string `json:"operator" validate:"required"`
	ReferenceCode string `json:"reference_code" validate:"required"`
	ClientID      string `json:"client_id" validate:"required"`
	Date          string `json:"date" validate:"required,datetime=2006-01-02"`
	Partner       string `json:"partner" validate:"selected"`
	ProductType   string `json:"product_type" validate:"product"`
	Value         Amount `json:"value"`
	Bank          string `json:"bank" validate:"selected"`
}

// MutationResult reports the outcome of a proposal write. Warning is set when
// the write succeeded but its audit entry could not be recorded.
type MutationResult struct {
	ID      uint   `json:"id"`
	Warning string `json:"warning,omitempty"`
}

// ProposalService handles proposal CRUD with audit logging
type ProposalService struct {
	repo    repository.ProposalRepository
	catalog CatalogLookup
	audit   *AuditService
}

// NewProposalService creates a proposal service
func NewProposalService(repo repository.ProposalRepository, catalog CatalogLookup, audit *AuditService) *ProposalService {
	return &ProposalService{repo: repo, catalog: catalog, audit: audit}
}

// Get returns a proposal by id
func (s *ProposalService) Get(ctx context.Context, id uint) (*models.Proposal, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "proposta", id)
	}
	return p, nil
}

// ListAll returns every proposal, newest first
func (s *ProposalService) ListAll(ctx context.Context) ([]models.Proposal, error) {
	return s.repo.List(ctx)
}

// Create validates and stores a new proposal
func (s *ProposalService) Create(ctx context.Context, actor *models.Identity, in ProposalInput) (*MutationResult, error) {
	if actor == nil {
		return nil, ErrAuthFailure
	}
	p, err := s.build(ctx, actor, in, nil)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}

	result := &MutationResult{ID: p.ID}
	result.Warning = s.record(ctx, p.ID, models.ActionCreate, actor, p.Snapshot())
	logger.Info("Proposal created", "id", p.ID, "by", actor.Login)
	return result, nil
}

// Update overwrites every field of an existing proposal
func (s *ProposalService) Update(ctx context.Context, actor *models.Identity, id uint, in ProposalInput) (*MutationResult, error) {
	if actor == nil {
		return nil, ErrAuthFailure
	}
	before, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "proposta", id)
	}
	after, err := s.build(ctx, actor, in, before)
	if err != nil {
		return nil, err
	}
	after.ID = id
	if err := s.repo.Update(ctx, after); err != nil {
		return nil, notFound(err, "proposta", id)
	}

	details := "antes: " + before.Snapshot() + " | depois: " + after.Snapshot()
	result := &MutationResult{ID: id}
	result.Warning = s.record(ctx, id, models.ActionUpdate, actor, details)
	logger.Info("Proposal updated", "id", id, "by", actor.Login)
	return result, nil
}

// Delete removes a proposal. A missing id fails without an audit entry.
func (s *ProposalService) Delete(ctx context.Context, actor *models.Identity, id uint) (*MutationResult, error) {
	if actor == nil {
		return nil, ErrAuthFailure
	}
	before, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "proposta", id)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return nil, notFound(err, "proposta", id)
	}

	result := &MutationResult{ID: id}
	result.Warning = s.record(ctx, id, models.ActionDelete, actor, before.Snapshot())
	logger.Info("Proposal deleted", "id", id, "by", actor.Login)
	return result, nil
}

// record writes the audit entry and turns a failure into a warning message
func (s *ProposalService) record(ctx context.Context, id uint, action string, actor *models.Identity, details string) string {
	if s.audit == nil {
		return ""
	}
	if err := s.audit.Log(ctx, id, action, actor.Login, details); err != nil {
		return "operação concluída, mas o log de auditoria não foi registrado: " + err.Error()
	}
	return ""
}

// build normalizes and validates input. previous is the stored record on
// update; its partner and bank stay acceptable even if no longer active.
func (s *ProposalService) build(ctx context.Context, actor *models.Identity, in ProposalInput, previous *models.Proposal) (*models.Proposal, error) {
	in.Operator = strings.TrimSpace(in.Operator)
	in.ReferenceCode = strings.TrimSpace(in.ReferenceCode)
	in.ClientID = strings.TrimSpace(in.ClientID)
	in.Date = strings.TrimSpace(in.Date)
	in.Partner = strings.TrimSpace(in.Partner)
	in.Bank = strings.TrimSpace(in.Bank)
	in.ProductType = strings.TrimSpace(in.ProductType)
	if in.ProductType == models.ProductPlaceholder {
		in.ProductType = ""
	}
	if in.Operator == "" {
		in.Operator = actor.DisplayName
	}

	var problems []string
	if err := validate.Struct(in); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return nil, err
		}
		for _, fe := range verrs {
			msg, ok := fieldMessages[fe.Field()+"."+fe.Tag()]
			if !ok {
				msg = fmt.Sprintf("campo %s inválido", fe.Field())
			}
			problems = append(problems, msg)
		}
	}

	value, err := models.ParseAmount(string(in.Value))
	if err != nil {
		problems = append(problems, err.Error())
	}

	if s.catalog != nil {
		var prevPartner, prevBank string
		if previous != nil {
			prevPartner, prevBank = previous.Partner, previous.Bank
		}
		for _, c := range []struct {
			kind     models.CatalogKind
			value    string
			previous string
		}{
			{models.CatalogPartners, in.Partner, prevPartner},
			{models.CatalogBanks, in.Bank, prevBank},
		} {
			if c.value == "" || c.value == models.PartnerPlaceholder || c.value == models.BankPlaceholder || c.value == c.previous {
				continue
			}
			ok, err := s.catalog.IsSelectable(ctx, c.kind, c.value)
			if err != nil {
				return nil, err
			}
			if !ok {
				problems = append(problems, fmt.Sprintf("%s %q não está ativo no cadastro", c.kind.Label(), c.value))
			}
		}
	}

	if err := newValidationError(problems); err != nil {
		return nil, err
	}

	return &models.Proposal{
		Operator:      in.Operator,
		ReferenceCode: in.ReferenceCode,
		ClientID:      in.ClientID,
		Date:          in.Date,
		Partner:       in.Partner,
		ProductType:   in.ProductType,
		Value:         value,
		Bank:          in.Bank,
	}, nil
}
