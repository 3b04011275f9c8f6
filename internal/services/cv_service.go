package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/studyia/career/internal/dtos"
	"github.com/studyia/career/internal/models"
	"gorm.io/gorm"
)

var ErrCVNotFound = errors.New("cv not found")

type CVService struct {
	DB  *gorm.DB
	LLM *LLMService
}

func NewCVService(db *gorm.DB, llm *LLMService) *CVService {
	return &CVService{DB: db, LLM: llm}
}

func (s *CVService) Create(ctx context.Context, req *dtos.CVRequest) (*models.CV, error) {
	cv := &models.CV{}
	if err := applyRequest(cv, req); err != nil {
		return nil, err
	}
	if err := s.DB.WithContext(ctx).Create(cv).Error; err != nil {
		return nil, fmt.Errorf("create cv: %w", err)
	}
	return cv, nil
}

func (s *CVService) Get(ctx context.Context, id uint) (*models.CV, error) {
	var cv models.CV
	err := s.DB.WithContext(ctx).First(&cv, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrCVNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get cv %d: %w", id, err)
	}
	return &cv, nil
}

func (s *CVService) List(ctx context.Context) ([]models.CV, error) {
	var cvs []models.CV
	if err := s.DB.WithContext(ctx).Order("updated_at DESC").Find(&cvs).Error; err != nil {
		return nil, fmt.Errorf("list cvs: %w", err)
	}
	return cvs, nil
}

func (s *CVService) Update(ctx context.Context, id uint, req *dtos.CVRequest) (*models.CV, error) {
	cv, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := applyRequest(cv, req); err != nil {
		return nil, err
	}
	if err := s.DB.WithContext(ctx).Save(cv).Error; err != nil {
		return nil, fmt.Errorf("update cv %d: %w", id, err)
	}
	return cv, nil
}

func (s *CVService) Delete(ctx context.Context, id uint) error {
	res := s.DB.WithContext(ctx).Delete(&models.CV{}, id)
	if res.Error != nil {
		return fmt.Errorf("delete cv %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrCVNotFound
	}
	return nil
}

// Extract reads an uploaded PDF and asks the model for its fields.
func (s *CVService) Extract(ctx context.Context, pdfContent []byte) (*dtos.ExtractedCV, error) {
	text, err := ExtractPDFText(pdfContent)
	if err != nil {
		return nil, err
	}
	log.Printf("📄 Extracted %d characters from uploaded CV", len(text))

	raw, err := s.LLM.ExtractCVDetails(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("AI extraction failed: %w", err)
	}

	var out dtos.ExtractedCV
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		log.Printf("❌ JSON Parse Error: %v. Raw: %s", err, raw)
		return nil, fmt.Errorf("decode AI response: %w", err)
	}
	SortSections(&out.CVSections)
	return &out, nil
}

// ToResponse decodes the stored sections.
func ToResponse(cv *models.CV) (*dtos.CVResponse, error) {
	resp := &dtos.CVResponse{
		ID:       cv.ID,
		FullName: cv.FullName,
		Title:    cv.Title,
		Email:    cv.Email,
		Phone:    cv.Phone,
		Location: cv.Location,
		Summary:  cv.Summary,
		Template: cv.Template,
		Unlocked: cv.Unlocked,
	}
	for _, f := range []struct {
		raw string
		dst any
	}{
		{cv.Experiences, &resp.Experiences},
		{cv.Education, &resp.Education},
		{cv.Skills, &resp.Skills},
	} {
		if f.raw == "" {
			continue
		}
		if err := json.Unmarshal([]byte(f.raw), f.dst); err != nil {
			return nil, fmt.Errorf("decode cv %d sections: %w", cv.ID, err)
		}
	}
	return resp, nil
}

func applyRequest(cv *models.CV, req *dtos.CVRequest) error {
	sections := req.CVSections
	SortSections(&sections)

	exp, err := json.Marshal(sections.Experiences)
	if err != nil {
		return err
	}
	edu, err := json.Marshal(sections.Education)
	if err != nil {
		return err
	}
	skills, err := json.Marshal(sections.Skills)
	if err != nil {
		return err
	}

	cv.FullName = req.FullName
	cv.Title = req.Title
	cv.Email = req.Email
	cv.Phone = req.Phone
	cv.Location = req.Location
	cv.Summary = req.Summary
	cv.Template = req.Template
	if cv.Template == "" {
		cv.Template = "classic"
	}
	cv.Experiences = string(exp)
	cv.Education = string(edu)
	cv.Skills = string(skills)
	return nil
}
