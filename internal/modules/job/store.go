// README: Tabular job/driver store backed by Google Sheets.
package job

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"google.golang.org/api/sheets/v4"

	"drover/internal/types"
)

// Column keys the engine depends on. Columns absent from a sheet are treated
// as empty rather than causing failure.
const (
	colJobID              = "job_id"
	colCollectionPostcode = "collection_postcode"
	colDeliveryPostcode   = "delivery_postcode"
	colCollectionDate     = "collection_date"
	colDeliveryDate       = "delivery_date"
	colCollectionRegion   = "collection_region"
	colDeliveryRegion     = "delivery_region"
	colClusterID          = "cluster_id"
	colLeg                = "forward_return_flag"
	colSelectedDriver     = "selected_driver"
	colOrderNo            = "order_no"
	colJobStatus          = "job_status"
	colJobActive          = "job_active"

	colDriverName     = "name"
	colDriverPostcode = "postcode"
)

// jobColumns is the canonical write order for job rows.
var jobColumns = []string{
	colJobID, colCollectionPostcode, colDeliveryPostcode,
	colCollectionDate, colDeliveryDate,
	colCollectionRegion, colDeliveryRegion,
	colClusterID, colLeg,
	colSelectedDriver, colOrderNo, colJobStatus, colJobActive,
}

// Store adapts the spreadsheet rows to typed records. All reads are
// point-in-time snapshots; writes are keyed by job_id and overwrite full rows.
type Store struct {
	svc           *sheets.Service
	spreadsheetID string
	driversSheet  string
}

func NewStore(svc *sheets.Service, spreadsheetID, driversSheet string) *Store {
	return &Store{svc: svc, spreadsheetID: spreadsheetID, driversSheet: driversSheet}
}

// ListJobs reads every job row from the named sheet.
func (s *Store) ListJobs(ctx context.Context, sheet string) ([]*Job, error) {
	header, rows, err := s.read(ctx, sheet)
	if err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}

	jobs := make([]*Job, 0, len(rows))
	for i, row := range rows {
		j := &Job{
			ID:                 types.ID(cell(header, row, colJobID)),
			CollectionPostcode: cell(header, row, colCollectionPostcode),
			DeliveryPostcode:   cell(header, row, colDeliveryPostcode),
			CollectionDate:     cell(header, row, colCollectionDate),
			DeliveryDate:       cell(header, row, colDeliveryDate),
			CollectionRegion:   cell(header, row, colCollectionRegion),
			DeliveryRegion:     cell(header, row, colDeliveryRegion),
			ClusterID:          types.ID(cell(header, row, colClusterID)),
			Leg:                Leg(cell(header, row, colLeg)),
			SelectedDriver:     cell(header, row, colSelectedDriver),
			Status:             Status(cell(header, row, colJobStatus)),
			Row:                i + 2, // sheet rows are 1-based and row 1 is the header
		}
		if n, err := strconv.Atoi(cell(header, row, colOrderNo)); err == nil {
			j.OrderNo = n
		}
		active := strings.ToLower(cell(header, row, colJobActive))
		j.Active = active == "true" || active == "1"
		jobs = append(jobs, j)
	}
	return jobs, nil
}

// ListDrivers reads the driver roster.
func (s *Store) ListDrivers(ctx context.Context) ([]Driver, error) {
	header, rows, err := s.read(ctx, s.driversSheet)
	if err != nil {
		return nil, fmt.Errorf("list drivers: %w", err)
	}
	drivers := make([]Driver, 0, len(rows))
	for _, row := range rows {
		name := strings.TrimSpace(cell(header, row, colDriverName))
		if name == "" {
			continue
		}
		drivers = append(drivers, Driver{
			Name:     name,
			Postcode: cell(header, row, colDriverPostcode),
		})
	}
	return drivers, nil
}

// WriteJobs overwrites the full row of every given job, keyed by its
// remembered sheet row. Jobs that never came from the sheet are appended.
func (s *Store) WriteJobs(ctx context.Context, sheet string, jobs []*Job) error {
	if len(jobs) == 0 {
		return nil
	}

	var data []*sheets.ValueRange
	var appends [][]interface{}
	for _, j := range jobs {
		row := jobRow(j)
		if j.Row == 0 {
			appends = append(appends, row)
			continue
		}
		data = append(data, &sheets.ValueRange{
			Range:  fmt.Sprintf("%s!A%d", sheet, j.Row),
			Values: [][]interface{}{row},
		})
	}

	if len(data) > 0 {
		req := &sheets.BatchUpdateValuesRequest{
			ValueInputOption: "RAW",
			Data:             data,
		}
		if _, err := s.svc.Spreadsheets.Values.BatchUpdate(s.spreadsheetID, req).Context(ctx).Do(); err != nil {
			return fmt.Errorf("write jobs: batch update: %w", err)
		}
	}
	if len(appends) > 0 {
		vr := &sheets.ValueRange{Values: appends}
		_, err := s.svc.Spreadsheets.Values.
			Append(s.spreadsheetID, sheet, vr).
			ValueInputOption("RAW").
			InsertDataOption("INSERT_ROWS").
			Context(ctx).Do()
		if err != nil {
			return fmt.Errorf("write jobs: append: %w", err)
		}
	}
	return nil
}

func (s *Store) read(ctx context.Context, sheet string) (map[string]int, [][]interface{}, error) {
	resp, err := s.svc.Spreadsheets.Values.Get(s.spreadsheetID, sheet).Context(ctx).Do()
	if err != nil {
		return nil, nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	if len(resp.Values) == 0 {
		return map[string]int{}, nil, nil
	}
	header := make(map[string]int, len(resp.Values[0]))
	for i, h := range resp.Values[0] {
		key := strings.ToLower(strings.TrimSpace(fmt.Sprint(h)))
		if _, ok := header[key]; !ok {
			header[key] = i
		}
	}
	return header, resp.Values[1:], nil
}

func jobRow(j *Job) []interface{} {
	values := map[string]string{
		colJobID:              string(j.ID),
		colCollectionPostcode: j.CollectionPostcode,
		colDeliveryPostcode:   j.DeliveryPostcode,
		colCollectionDate:     j.CollectionDate,
		colDeliveryDate:       j.DeliveryDate,
		colCollectionRegion:   j.CollectionRegion,
		colDeliveryRegion:     j.DeliveryRegion,
		colClusterID:          string(j.ClusterID),
		colLeg:                string(j.Leg),
		colSelectedDriver:     j.SelectedDriver,
		colOrderNo:            strconv.Itoa(j.OrderNo),
		colJobStatus:          string(j.Status),
		colJobActive:          strconv.FormatBool(j.Active),
	}
	row := make([]interface{}, len(jobColumns))
	for i, c := range jobColumns {
		row[i] = values[c]
	}
	return row
}

func cell(header map[string]int, row []interface{}, key string) string {
	idx, ok := header[key]
	if !ok || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(fmt.Sprint(row[idx]))
}
