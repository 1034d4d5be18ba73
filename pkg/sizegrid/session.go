package sizegrid

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/ukaji3/sizegrid-go/pkg/sizegrid/grid"
	"github.com/ukaji3/sizegrid-go/pkg/sizegrid/models"
	"github.com/ukaji3/sizegrid-go/pkg/sizegrid/nav"
)

// Session is one open chart editor: four grids, their navigation state and
// the chart metadata. It is not safe for concurrent use; hosts run gateway
// calls off their event loop and apply the results back on it.
type Session struct {
	gateway Gateway
	opts    Options
	log     zerolog.Logger

	id     string
	meta   models.ChartMetadata
	tables map[models.TableShape]*grid.Model
	navs   map[models.TableShape]*nav.Controller
	active models.TableShape

	loadSeq uint64
}

// NewSession returns a session holding a new, empty chart.
func NewSession(gw Gateway, opts Options) *Session {
	s := &Session{
		gateway: gw,
		opts:    opts,
		log:     opts.logger(),
		active:  models.ShapeMeasurements,
	}
	s.replace(models.ChartData{})
	return s
}

// replace swaps in a fresh set of grids built from data.
func (s *Session) replace(data models.ChartData) {
	cmp := grid.WithComparator(s.opts.Comparator())
	s.tables = make(map[models.TableShape]*grid.Model, len(models.Shapes))
	s.navs = make(map[models.TableShape]*nav.Controller, len(models.Shapes))
	for _, shape := range models.Shapes {
		m := grid.FromTable(shape, data.Table(shape), cmp)
		s.tables[shape] = m
		s.navs[shape] = nav.NewController(m.Rows(), m.Columns())
	}
	s.meta = data.ChartMetadata
}

// ID returns the chart id, empty for a chart never saved.
func (s *Session) ID() string {
	return s.id
}

// ReadOnly reports whether the session rejects edits.
func (s *Session) ReadOnly() bool {
	return s.opts.ReadOnly
}

// Metadata returns the chart metadata.
func (s *Session) Metadata() models.ChartMetadata {
	return s.meta
}

// SetName sets the chart name.
func (s *Session) SetName(name string) error {
	if s.opts.ReadOnly {
		return ErrReadOnly
	}
	s.meta.Name = name
	return nil
}

// SetMarket sets the chart market.
func (s *Session) SetMarket(market string) error {
	if s.opts.ReadOnly {
		return ErrReadOnly
	}
	s.meta.Market = market
	return nil
}

// SetUnit sets the chart measurement unit.
func (s *Session) SetUnit(unit string) error {
	if s.opts.ReadOnly {
		return ErrReadOnly
	}
	s.meta.Unit = unit
	return nil
}

// Table returns the grid for shape. Edits should go through the session so
// the navigation snapshot stays in sync.
func (s *Session) Table(shape models.TableShape) *grid.Model {
	return s.tables[shape]
}

// Active returns the shape of the table being edited.
func (s *Session) Active() models.TableShape {
	return s.active
}

// Select makes shape the active table.
func (s *Session) Select(shape models.TableShape) error {
	if _, ok := s.tables[shape]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownShape, shape)
	}
	s.active = shape
	return nil
}

// Navigator returns the navigation controller of the active table.
func (s *Session) Navigator() *nav.Controller {
	return s.navs[s.active]
}

func (s *Session) sync() {
	m := s.tables[s.active]
	s.navs[s.active].Sync(m.Rows(), m.Columns())
}

// AddRow adds a row to the active table and returns its key.
func (s *Session) AddRow(label string) (string, error) {
	if s.opts.ReadOnly {
		return "", ErrReadOnly
	}
	key, err := s.tables[s.active].AddRow(label)
	if err != nil {
		return "", err
	}
	s.sync()
	return key, nil
}

// RemoveRow removes a row from the active table.
func (s *Session) RemoveRow(key string) error {
	if s.opts.ReadOnly {
		return ErrReadOnly
	}
	s.tables[s.active].RemoveRow(key)
	s.sync()
	return nil
}

// AddColumn adds a column to the active table.
func (s *Session) AddColumn(label string) error {
	if s.opts.ReadOnly {
		return ErrReadOnly
	}
	if err := s.tables[s.active].AddColumn(label); err != nil {
		return err
	}
	s.sync()
	return nil
}

// RemoveColumn removes a column from the active table.
func (s *Session) RemoveColumn(column string) error {
	if s.opts.ReadOnly {
		return ErrReadOnly
	}
	s.tables[s.active].RemoveColumn(column)
	s.sync()
	return nil
}

// SetCell sets a cell of the active table. Stale references are ignored.
func (s *Session) SetCell(row, column string, v models.Value) error {
	if s.opts.ReadOnly {
		return ErrReadOnly
	}
	s.tables[s.active].SetCell(row, column, v)
	return nil
}

// Focus focuses a cell of the active table.
func (s *Session) Focus(pos nav.Position) bool {
	return s.Navigator().Focus(pos)
}

// HandleKey feeds a navigation key to the active table's controller.
func (s *Session) HandleKey(key nav.Key) (nav.State, bool) {
	return s.Navigator().Handle(key)
}

// Payload returns the chart in storage form.
func (s *Session) Payload() models.ChartData {
	data := models.ChartData{ChartMetadata: s.meta}
	for _, shape := range models.Shapes {
		data.SetTable(shape, s.tables[shape].Normalize())
	}
	return data
}

// DisplayTables returns the chart in display form for exporters: scalar
// tables as {row: {Value: v}}, matrix columns in size order.
func (s *Session) DisplayTables() models.ChartData {
	data := models.ChartData{ChartMetadata: s.meta}
	for _, shape := range models.Shapes {
		data.SetTable(shape, s.tables[shape].Denormalize())
	}
	return data
}

// LoadRequest identifies one load. Only the most recent request may apply.
type LoadRequest struct {
	ID  string
	seq uint64
}

// LoadResult is the outcome of fetching a LoadRequest.
type LoadResult struct {
	Request LoadRequest
	Data    models.ChartData
	Err     error
}

// BeginLoad starts a load of chart id, superseding any load in flight.
func (s *Session) BeginLoad(id string) LoadRequest {
	s.loadSeq++
	return LoadRequest{ID: id, seq: s.loadSeq}
}

// Fetch calls the gateway. It does not touch the session and may run on
// another goroutine.
func (r LoadRequest) Fetch(ctx context.Context, gw Gateway) LoadResult {
	data, err := gw.Load(ctx, r.ID)
	return LoadResult{Request: r, Data: data, Err: err}
}

// ApplyLoad installs a fetched chart. Results of superseded requests are
// ignored and report false. A successful apply replaces every table and the
// metadata, discarding unsaved local edits. A failed fetch leaves the
// session unchanged and returns the gateway error.
func (s *Session) ApplyLoad(res LoadResult) (bool, error) {
	if res.Request.seq != s.loadSeq {
		s.log.Debug().Str("chart", res.Request.ID).Msg("ignoring superseded load")
		return false, nil
	}
	if res.Err != nil {
		s.log.Debug().Err(res.Err).Str("chart", res.Request.ID).Msg("load failed")
		return false, res.Err
	}

	s.replace(res.Data)
	s.id = res.Request.ID
	s.log.Debug().Str("chart", s.id).Msg("chart loaded")
	return true, nil
}

// Load fetches chart id and applies it.
func (s *Session) Load(ctx context.Context, id string) error {
	req := s.BeginLoad(id)
	_, err := s.ApplyLoad(req.Fetch(ctx, s.gateway))
	return err
}

// SaveRequest is a snapshot of the chart taken for saving.
type SaveRequest struct {
	ID      string
	Payload models.ChartData
}

// SaveResult is the outcome of a SaveRequest.
type SaveResult struct {
	Request SaveRequest
	ID      string
	Err     error
}

// BeginSave snapshots the chart for saving.
func (s *Session) BeginSave() (SaveRequest, error) {
	if s.opts.ReadOnly {
		return SaveRequest{}, ErrReadOnly
	}
	return SaveRequest{ID: s.id, Payload: s.Payload()}, nil
}

// Send calls the gateway. It does not touch the session.
func (r SaveRequest) Send(ctx context.Context, gw Gateway) SaveResult {
	id, err := gw.Save(ctx, r.ID, r.Payload)
	return SaveResult{Request: r, ID: id, Err: err}
}

// ApplySave records the outcome of a save. Local edits are never rolled
// back; a failure is returned as reported by the gateway.
func (s *Session) ApplySave(res SaveResult) (string, error) {
	if res.Err != nil {
		s.log.Debug().Err(res.Err).Str("chart", res.Request.ID).Msg("save failed")
		return "", res.Err
	}
	if s.id == res.Request.ID {
		s.id = res.ID
	}
	s.log.Debug().Str("chart", res.ID).Msg("chart saved")
	return res.ID, nil
}

// Save stores the chart through the gateway and returns its id.
func (s *Session) Save(ctx context.Context) (string, error) {
	req, err := s.BeginSave()
	if err != nil {
		return "", err
	}
	return s.ApplySave(req.Send(ctx, s.gateway))
}
