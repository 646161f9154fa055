package inventory

import (
	"fmt"
	"reflect"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/shopspring/decimal"
)

// StockRow is one line of the aggregated stock list: per-item totals
// joined with the most recent receiving batch.
type StockRow struct {
	InboundNo         string          `mapstructure:"inbound_no" json:"inbound_no"`
	PurchaseNo        string          `mapstructure:"purchase_no" json:"purchase_no"`
	SupplierName      string          `mapstructure:"supplier_name" json:"supplier_name"`
	ItemName          string          `mapstructure:"item_name" json:"item_name"`
	TotalQuantity     decimal.Decimal `mapstructure:"total_quantity" json:"quantity"`
	Unit              string          `mapstructure:"unit" json:"unit"`
	LatestInboundTime string          `mapstructure:"latest_inbound_time" json:"inbound_time"`
	StorageLocation   string          `mapstructure:"storage_location" json:"storage_location"`
	Inspector         string          `mapstructure:"inspector" json:"inspector"`
}

// TransferHistoryRow is one batch+item journey from receipt to issue.
type TransferHistoryRow struct {
	InboundNo       string          `mapstructure:"inbound_no" json:"inbound_no"`
	ItemName        string          `mapstructure:"item_name" json:"item_name"`
	Unit            string          `mapstructure:"unit" json:"unit"`
	InboundTime     string          `mapstructure:"inbound_time" json:"inbound_time"`
	StorageLocation string          `mapstructure:"storage_location" json:"storage_location"`
	Inspector       string          `mapstructure:"inspector" json:"inspector"`
	CurrentStock    decimal.Decimal `mapstructure:"current_stock" json:"current_stock"`
	OutboundTime    string          `mapstructure:"outbound_time" json:"outbound_time"`
	Receiver        string          `mapstructure:"receiver" json:"receiver"`
	Purpose         string          `mapstructure:"purpose" json:"purpose"`
	CurrentStatus   string          `mapstructure:"current_status" json:"current_status"`
}

const stockListQuery = `
WITH latest_records AS (
	SELECT
		item_name,
		ROUND(SUM(quantity), 2) AS total_quantity,
		MIN(unit) AS unit,
		MAX(inbound_time) AS latest_inbound_time
	FROM inbound_records
	WHERE quality_check = 1
	GROUP BY item_name
)
SELECT
	ir.inbound_no,
	ir.purchase_no,
	COALESCE(s.name, '') AS supplier_name,
	lr.item_name,
	lr.total_quantity,
	lr.unit,
	lr.latest_inbound_time,
	COALESCE(ir.storage_location, '') AS storage_location,
	ir.inspector
FROM latest_records lr
JOIN inbound_records ir ON lr.item_name = ir.item_name
	AND lr.latest_inbound_time = ir.inbound_time
LEFT JOIN purchase_orders po ON ir.purchase_no = po.order_id
LEFT JOIN suppliers s ON po.supplier_id = s.code
WHERE ir.quality_check = 1
ORDER BY lr.latest_inbound_time DESC`

const transferHistoryQuery = `
WITH outbound_info AS (
	SELECT
		o.inbound_no,
		o.item_name,
		MIN(CASE WHEN o.status = 'fulfilled' THEN o.outbound_time END) AS outbound_time,
		MAX(CASE WHEN o.status = 'fulfilled' THEN o.receiver END) AS receiver,
		MAX(CASE WHEN o.status = 'fulfilled' THEN o.purpose END) AS purpose,
		MAX(CASE WHEN o.status = 'pending' THEN 1 ELSE 0 END) AS is_pending
	FROM outbound_records o
	GROUP BY o.inbound_no, o.item_name
)
SELECT
	ir.inbound_no,
	ir.item_name,
	ir.unit,
	ir.inbound_time,
	COALESCE(ir.storage_location, '') AS storage_location,
	ir.inspector,
	ir.quantity AS current_stock,
	COALESCE(oi.outbound_time, '') AS outbound_time,
	COALESCE(oi.receiver, '') AS receiver,
	COALESCE(oi.purpose, '') AS purpose,
	CASE
		WHEN ir.quantity <= 0 THEN 'issued'
		WHEN oi.is_pending = 1 THEN 'pending_outbound'
		ELSE 'in_stock'
	END AS current_status
FROM inbound_records ir
LEFT JOIN outbound_info oi ON ir.inbound_no = oi.inbound_no AND ir.item_name = oi.item_name
WHERE ir.quality_check = 1
ORDER BY ir.inbound_time DESC`

// StockRows returns the aggregated stock list.
func (r *InventoryRepository) StockRows() ([]StockRow, error) {
	return decodeRows[StockRow](r, stockListQuery)
}

// TransferHistory returns per-batch transfer journeys.
func (r *InventoryRepository) TransferHistory() ([]TransferHistoryRow, error) {
	return decodeRows[TransferHistoryRow](r, transferHistoryQuery)
}

// decodeRows runs a raw query and maps the loosely-typed rows into T.
// SQLite hands back a mix of int64/float64/string depending on column
// affinity, so decoding goes through mapstructure with hooks instead
// of direct Scan targets.
func decodeRows[T any](r *InventoryRepository, query string) ([]T, error) {
	var raw []map[string]interface{}
	if err := r.db.Raw(query).Scan(&raw).Error; err != nil {
		return nil, err
	}

	out := make([]T, 0, len(raw))
	for _, row := range raw {
		var t T
		dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				numberToDecimalHook(),
				timeToStringHook(),
			),
			Result:           &t,
			WeaklyTypedInput: true,
		})
		if err != nil {
			return nil, err
		}
		if err := dec.Decode(row); err != nil {
			return nil, fmt.Errorf("decode stock row: %w", err)
		}
		out = append(out, t)
	}
	return out, nil
}

var decimalType = reflect.TypeOf(decimal.Decimal{})

func numberToDecimalHook() mapstructure.DecodeHookFunc {
	return func(f, t reflect.Type, data interface{}) (interface{}, error) {
		if t != decimalType {
			return data, nil
		}
		switch v := data.(type) {
		case float64:
			return decimal.NewFromFloat(v), nil
		case int64:
			return decimal.NewFromInt(v), nil
		case string:
			return decimal.NewFromString(v)
		case []byte:
			return decimal.NewFromString(string(v))
		}
		return data, nil
	}
}

func timeToStringHook() mapstructure.DecodeHookFunc {
	return func(f, t reflect.Type, data interface{}) (interface{}, error) {
		if t.Kind() != reflect.String {
			return data, nil
		}
		if v, ok := data.(time.Time); ok {
			return v.Format("2006-01-02 15:04:05"), nil
		}
		return data, nil
	}
}
