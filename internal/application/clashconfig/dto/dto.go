package dto

import (
	"time"

	"github.com/orris-inc/subhub/internal/domain/clashconfig"
)

type ClashConfigDTO struct {
	ID           string    `json:"id"`
	Key          string    `json:"key"`
	Name         string    `json:"name"`
	GlobalConfig *string   `json:"global_config"`
	Rules        *string   `json:"rules"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func ToClashConfigDTO(p *clashconfig.Profile) *ClashConfigDTO {
	if p == nil {
		return nil
	}
	return &ClashConfigDTO{
		ID:           p.ID(),
		Key:          p.Key(),
		Name:         p.Name(),
		GlobalConfig: p.GlobalConfig(),
		Rules:        p.Rules(),
		CreatedAt:    p.CreatedAt(),
		UpdatedAt:    p.UpdatedAt(),
	}
}

func ToClashConfigDTOs(profiles []*clashconfig.Profile) []*ClashConfigDTO {
	out := make([]*ClashConfigDTO, 0, len(profiles))
	for _, p := range profiles {
		out = append(out, ToClashConfigDTO(p))
	}
	return out
}
