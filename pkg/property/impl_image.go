/*
 * Copyright (c) 2024-present unTill Pro, Ltd.
 */

package property

import (
	"slices"
	"strings"

	"github.com/voedger/charcoal/pkg/ilog"
)

var defaultImageMimetypes = []string{"image/png", "image/jpeg", "image/gif", "image/webp", "image/svg+xml"}

var applyEffectsPolicies = []string{ApplyEffects_Never, ApplyEffects_Upload, ApplyEffects_Save}

// File which must be an image. Effects are applied by IEffectsProcessor
// after upload or on every save, according to apply effects policy
//
// # Implements:
//   - IProperty
type ImageProperty struct {
	FileProperty
	effects      []map[string]any
	applyEffects string
}

func newImageProperty(deps Deps) IProperty {
	p := &ImageProperty{}
	p.initFile(p, Type_Image, deps)
	p.acceptedMimetypes = slices.Clone(defaultImageMimetypes)
	p.applyEffects = ApplyEffects_Save
	return p
}

func (p *ImageProperty) Effects() []map[string]any { return p.effects }

// Sets effects from list of effect definitions
func (p *ImageProperty) SetEffects(v any) error {
	ee := []map[string]any{}
	for _, item := range listItems(v) {
		e, ok := item.(map[string]any)
		if !ok {
			return ErrInvalidArgument("effect of property «%s» must be a map, got %T", p.ident, item)
		}
		ee = append(ee, e)
	}
	p.effects = ee
	return nil
}

func (p *ImageProperty) AddEffect(e map[string]any) {
	p.effects = append(p.effects, e)
}

// Returns apply effects policy
func (p *ImageProperty) ApplyEffects() string { return p.applyEffects }

func (p *ImageProperty) SetApplyEffects(policy string) error {
	if !slices.Contains(applyEffectsPolicies, policy) {
		return ErrInvalidArgument("apply effects policy «%s» is not one of %v", policy, applyEffectsPolicies)
	}
	p.applyEffects = policy
	return nil
}

// Saves files, then applies effects according to policy
func (p *ImageProperty) Save(v any) (any, error) {
	uploaded := p.hasUploads(v)
	res, err := p.FileProperty.Save(v)
	if err != nil {
		return nil, err
	}
	switch {
	case p.applyEffects == ApplyEffects_Save, p.applyEffects == ApplyEffects_Upload && uploaded:
		p.processEffects(res)
	}
	return res, nil
}

func (p *ImageProperty) hasUploads(v any) bool {
	if p.l10n {
		if m, ok := v.(map[string]any); ok {
			for _, lv := range m {
				if p.hasUploads(lv) {
					return true
				}
			}
			return false
		}
	}
	for _, item := range p.uploadItems(v) {
		switch val := item.(type) {
		case Upload, *Upload:
			return true
		case string:
			if strings.HasPrefix(val, "data:") {
				return true
			}
		}
	}
	return false
}

func (p *ImageProperty) processEffects(saved any) {
	if len(p.effects) == 0 {
		return
	}
	if p.deps.EffectsProcessor == nil {
		p.deps.Logger.Debug("no effects processor, effects are not applied", ilog.Ctx{"ident": p.ident})
		return
	}
	items := listItems(saved)
	if m, ok := saved.(map[string]any); ok {
		items = nil
		for _, lv := range m {
			items = append(items, listItems(lv)...)
		}
	}
	for _, item := range items {
		rel, ok := item.(string)
		if !ok || rel == "" {
			continue
		}
		if err := p.deps.EffectsProcessor.Apply(p.FilePath(rel), p.effects); err != nil {
			p.deps.Logger.Warning("image effects failed", ilog.Ctx{"ident": p.ident, "path": rel, "error": err.Error()})
		}
	}
}

func (p *ImageProperty) setDataKey(key string, v any) (bool, error) {
	switch key {
	case "effects":
		return true, p.SetEffects(v)
	case "applyeffects":
		s, ok := v.(string)
		if !ok {
			return true, ErrInvalidArgument("apply effects policy must be a string, got %T", v)
		}
		return true, p.SetApplyEffects(s)
	}
	return p.FileProperty.setDataKey(key, v)
}
