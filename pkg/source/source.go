/*
 * Copyright (c) 2024-present unTill Pro, Ltd.
 */

package source

import (
	"slices"

	"github.com/voedger/charcoal/pkg/expression"
	"github.com/voedger/charcoal/pkg/ilog"
	"github.com/voedger/charcoal/pkg/model"
	"github.com/voedger/charcoal/pkg/property"
)

// Common part of source engines: model, fetched properties and query constraints.
//
// Engines embed Source and implement CRUD methods of ISource
type Source struct {
	logger     ilog.ILogger
	model      *model.Model
	properties []string
	filters    []*expression.Filter
	orders     []*expression.Order
	pagination *expression.Pagination
}

// Returns source common part with logger. Nil logger is replaced by nop logger
func MakeSource(logger ilog.ILogger) Source {
	if logger == nil {
		logger = ilog.NewNop()
	}
	return Source{
		logger:     logger,
		pagination: expression.NewPagination(),
	}
}

func (s *Source) Logger() ilog.ILogger { return s.logger }

func (s *Source) SetModel(m *model.Model) { s.model = m }

func (s *Source) Model() (*model.Model, error) {
	if s.model == nil {
		return nil, ErrModelNotSet
	}
	return s.model, nil
}

func (s *Source) HasModel() bool { return s.model != nil }

// Returns item itself or source model if item is nil
func (s *Source) Item(item *model.Model) (*model.Model, error) {
	if item != nil {
		return item, nil
	}
	return s.Model()
}

func (s *Source) SetProperties(idents ...string) { s.properties = slices.Clone(idents) }

func (s *Source) AddProperty(ident string) {
	if !slices.Contains(s.properties, ident) {
		s.properties = append(s.properties, ident)
	}
}

func (s *Source) Properties() []string { return s.properties }

func (s *Source) SetFilters(filters ...*expression.Filter) error {
	s.filters = nil
	for _, f := range filters {
		if err := s.AddFilter(f); err != nil {
			return err
		}
	}
	return nil
}

func (s *Source) AddFilter(f *expression.Filter) error {
	if f == nil {
		return ErrInvalidArgument("filter is nil")
	}
	f = f.Clone()
	if err := s.coupleFilter(f); err != nil {
		return err
	}
	s.filters = append(s.filters, f)
	return nil
}

func (s *Source) Filters() []*expression.Filter { return s.filters }

func (s *Source) SetOrders(orders ...*expression.Order) error {
	s.orders = nil
	for _, o := range orders {
		if err := s.AddOrder(o); err != nil {
			return err
		}
	}
	return nil
}

// Adds order. If model is set then order on l10n property targets its field of current locale
func (s *Source) AddOrder(o *expression.Order) error {
	if o == nil {
		return ErrInvalidArgument("order is nil")
	}
	c := *o
	if p := s.modelProperty(c.Property()); p != nil && p.L10n() {
		ident, err := p.L10nIdent()
		if err != nil {
			return err
		}
		if err := c.SetProperty(ident); err != nil {
			return err
		}
	}
	s.orders = append(s.orders, &c)
	return nil
}

func (s *Source) Orders() []*expression.Order { return s.orders }

func (s *Source) SetPagination(p *expression.Pagination) {
	if p == nil {
		p = expression.NewPagination()
	}
	s.pagination = p
}

func (s *Source) Pagination() *expression.Pagination { return s.pagination }

func (s *Source) SetPage(page int) error { return s.pagination.SetPage(page) }

func (s *Source) SetNumPerPage(num int) error { return s.pagination.SetNumPerPage(num) }

// Returns model property of filter or order target, nil if model is not set or has no such property
func (s *Source) modelProperty(ident string) property.IProperty {
	if s.model == nil || ident == "" || !s.model.HasProperty(ident) {
		return nil
	}
	p, err := s.model.P(ident)
	if err != nil {
		s.logger.Warning("can not instantiate filtered property", ilog.Ctx{"ident": ident, "error": err.Error()})
		return nil
	}
	return p
}

// Rewrites filter targets according to model properties, nested filters included
func (s *Source) coupleFilter(f *expression.Filter) error {
	for _, n := range f.Filters() {
		if err := s.coupleFilter(n); err != nil {
			return err
		}
	}
	p := s.modelProperty(f.Property())
	if p == nil {
		return nil
	}
	if p.L10n() {
		ident, err := p.L10nIdent()
		if err != nil {
			return err
		}
		if err := f.SetProperty(ident); err != nil {
			return err
		}
	}
	if !p.Multiple() || slices.Contains(nullOperators, f.Operator()) {
		return nil
	}
	if jsonStored(p) {
		s.logger.Warning("filter on JSON stored multiple property keeps its operator", ilog.Ctx{"ident": p.Ident(), "operator": f.Operator()})
		return nil
	}
	if err := f.SetSeparator(p.MultipleSeparator()); err != nil {
		return err
	}
	return f.SetOperator(Operator_FindInSet)
}

// Multiple values of structure properties are stored as JSON list, not joined with separator
func jsonStored(p property.IProperty) bool {
	switch p.Type() {
	case property.Type_Structure, property.Type_MapStructure:
		return true
	}
	return false
}

func (s *Source) Fields(item *model.Model) ([]property.Field, error) {
	return s.FieldsOf(item, s.properties...)
}

// Returns storage fields of active storable properties of item, key field first.
// If idents are specified then only fields of these properties and key are returned
func (s *Source) FieldsOf(item *model.Model, idents ...string) ([]property.Field, error) {
	item, err := s.Item(item)
	if err != nil {
		return nil, err
	}
	pp, err := item.ActiveProperties()
	if err != nil {
		return nil, err
	}
	res := []property.Field{}
	for _, p := range pp {
		key := p.Ident() == item.Key()
		if !p.Storable() || (!key && len(idents) > 0 && !slices.Contains(idents, p.Ident())) {
			continue
		}
		ff, err := p.Fields(p.Val())
		if err != nil {
			return nil, err
		}
		if key {
			res = append(ff, res...)
			continue
		}
		res = append(res, ff...)
	}
	return res, nil
}

// Returns field names of fields
func FieldNames(ff []property.Field) []string {
	res := make([]string, len(ff))
	for i, f := range ff {
		res[i] = f.Name
	}
	return res
}
