package http

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"

	"moneykeeper/internal/logger"
	"moneykeeper/internal/service"
	"moneykeeper/models"
)

var (
	expenseCSVHeader = []string{"id", "title", "amount", "category", "date", "description", "payment_method"}
	incomeCSVHeader  = []string{"id", "title", "amount", "category", "date", "description"}
)

// exportRecordsCSV streams the user's records as a CSV attachment named after
// the collection. Income documents omit the payment_method column.
func (h *Handler) exportRecordsCSV(svc service.RecordService, collection string, withPayment bool) http.HandlerFunc {
	header := incomeCSVHeader
	if withPayment {
		header = expenseCSVHeader
	}

	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		userID, ok := userIDFromRequest(w, r)
		if !ok {
			return
		}

		records, err := svc.Export(r.Context(), userID)
		if err != nil {
			log.Err(err).Msg("record export failed")
			writeError(w, err)
			return
		}

		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", collection+".csv"))

		csvWriter := csv.NewWriter(w)
		if err := csvWriter.Write(header); err != nil {
			log.Err(err).Msg("writing CSV header failed")
			return
		}

		for _, record := range records {
			if err := csvWriter.Write(csvRow(record, withPayment)); err != nil {
				log.Err(err).Int64("id", record.ID).Msg("writing CSV row failed")
				return
			}
		}

		csvWriter.Flush()
		if err := csvWriter.Error(); err != nil {
			log.Err(err).Msg("flushing CSV output failed")
		}
	}
}

func csvRow(record models.Record, withPayment bool) []string {
	row := []string{
		strconv.FormatInt(record.ID, 10),
		record.Title,
		strconv.FormatFloat(record.Amount, 'f', -1, 64),
		record.Category,
		record.Date,
		record.Description,
	}
	if withPayment {
		row = append(row, record.PaymentMethod)
	}
	return row
}
