package tasks

import (
	"context"

	"github.com/sandeepkv93/kario/internal/storage"
	"github.com/sandeepkv93/kario/internal/taskview"
)

// ViewSettings are the persisted filter and sort toggles.
type ViewSettings struct {
	Filter taskview.FilterSettings
	Values taskview.FilterValues
	Sort   taskview.SortSettings
}

func DefaultViewSettings() ViewSettings {
	return ViewSettings{
		Values: taskview.DefaultFilterValues(),
		Sort:   taskview.DefaultSortSettings(),
	}
}

func (s *Service) LoadViewSettings(ctx context.Context) ViewSettings {
	def := DefaultViewSettings()
	return ViewSettings{
		Filter: storage.Load(ctx, s.store, storage.KeyFilterSettings, def.Filter),
		Values: storage.Load(ctx, s.store, storage.KeyFilterValues, def.Values),
		Sort:   storage.Load(ctx, s.store, storage.KeySortSettings, def.Sort),
	}
}

// SaveViewSettings writes all three settings keys in one batch.
func (s *Service) SaveViewSettings(ctx context.Context, vs ViewSettings) error {
	batch := make(map[string]string, 3)
	for key, v := range map[string]any{
		storage.KeyFilterSettings: vs.Filter,
		storage.KeyFilterValues:   vs.Values,
		storage.KeySortSettings:   vs.Sort,
	} {
		raw, err := storage.Encode(v)
		if err != nil {
			return err
		}
		batch[key] = raw
	}
	if err := s.store.PutMany(ctx, batch); err != nil {
		return err
	}
	s.publish(Change{Kind: ChangeSettings})
	return nil
}

// Query builds a taskview query for scope from vs.
func (vs ViewSettings) Query(scope taskview.Scope) taskview.Query {
	return taskview.Query{Scope: scope, Settings: vs.Filter, Values: vs.Values, Sort: vs.Sort}
}
