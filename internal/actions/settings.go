package actions

import (
	"context"
	"fmt"

	"github.com/cto-ai/clif/internal/config"
	"github.com/cto-ai/clif/internal/domain"
	"github.com/cto-ai/clif/internal/intent"
	"github.com/cto-ai/clif/internal/usage"
)

// Setting is one row of `settings list`.
type Setting struct {
	Key         string
	Value       string
	Section     string
	Description string
	Source      string
}

type settingsWriter interface {
	Set(key, value string) error
	Unset(key string) error
}

type settingsSource interface {
	Source(key string) config.Source
}

func provider(settings any) (domain.SettingsProvider, error) {
	p, ok := settings.(domain.SettingsProvider)
	if !ok {
		return nil, intent.Fail(map[string]any{"code": "ENOSETTINGS"}, fmt.Sprintf("settings of type %T are not readable", settings))
	}
	return p, nil
}

func (d Deps) getSetting(_ context.Context, value any, settings any) (any, error) {
	key := argsOf(value).String("key")
	if !domain.IsValidSettingKey(key) {
		return nil, usage.InvalidSettingKey(key)
	}
	p, err := provider(settings)
	if err != nil {
		return nil, err
	}
	v, _ := p.Get(key)
	return v, nil
}

// listSettings resolves to every visible setting in display order.
func (d Deps) listSettings(_ context.Context, _ any, settings any) (any, error) {
	p, err := provider(settings)
	if err != nil {
		return nil, err
	}
	values := p.All()
	src, _ := settings.(settingsSource)

	var out []Setting
	for _, key := range domain.VisibleSettingKeys() {
		s := Setting{
			Key:         key.Name,
			Value:       values[key.Name],
			Section:     key.Section,
			Description: key.Description,
		}
		if src != nil {
			s.Source = src.Source(key.Name).String()
		}
		out = append(out, s)
	}
	return out, nil
}

func (d Deps) setSetting(_ context.Context, value any, settings any) (any, error) {
	a := argsOf(value)
	key := a.String("key")
	w, err := writer(settings)
	if err != nil {
		return nil, err
	}
	if err := w.Set(key, a.String("value")); err != nil {
		return nil, err
	}
	d.Logger.Info("actions: setting %s updated", key)
	return nil, nil
}

func (d Deps) unsetSetting(_ context.Context, value any, settings any) (any, error) {
	key := argsOf(value).String("key")
	w, err := writer(settings)
	if err != nil {
		return nil, err
	}
	if err := w.Unset(key); err != nil {
		return nil, err
	}
	d.Logger.Info("actions: setting %s reset", key)
	return nil, nil
}

func writer(settings any) (settingsWriter, error) {
	w, ok := settings.(settingsWriter)
	if !ok {
		return nil, intent.Fail(map[string]any{"code": "EROFS"}, "settings are read-only")
	}
	return w, nil
}
