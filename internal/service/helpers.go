package service

import (
	"fmt"

	"cloud.google.com/go/civil"
	"github.com/alexanderramin/examplan/internal/domain"
)

// planIndex maps each plan date to its position.
type planIndex struct {
	items  []domain.PlanItem
	byDate map[civil.Date]int
}

func newPlanIndex(items []domain.PlanItem) planIndex {
	idx := planIndex{
		items:  make([]domain.PlanItem, len(items)),
		byDate: make(map[civil.Date]int, len(items)),
	}
	for i, item := range items {
		idx.items[i] = item.Clone()
		idx.byDate[item.Date] = i
	}
	return idx
}

func (p planIndex) lookup(date civil.Date) (domain.PlanItem, error) {
	i, ok := p.byDate[date]
	if !ok {
		return domain.PlanItem{}, fmt.Errorf("%s: %w", date, domain.ErrDateOutsidePlan)
	}
	return p.items[i].Clone(), nil
}

func (p planIndex) copyItems() []domain.PlanItem {
	out := make([]domain.PlanItem, len(p.items))
	for i, item := range p.items {
		out[i] = item.Clone()
	}
	return out
}
