package api

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/ruvan/cardledger/internal/common"
	"github.com/ruvan/cardledger/internal/model"
	"github.com/ruvan/cardledger/internal/report"
)

type transactionResponse struct {
	ID          string          `json:"id"`
	PostDate    string          `json:"post_date"`
	InvDate     string          `json:"inv_date"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	IsCredit    bool            `json:"is_credit"`
	Category    string          `json:"category"`
}

type statementResponse struct {
	ID           string                `json:"id"`
	Filename     string                `json:"filename"`
	UploadedAt   time.Time             `json:"uploaded_at"`
	Transactions []transactionResponse `json:"transactions"`
	Month        int                   `json:"month"`
	Year         int                   `json:"year"`
}

type updateTransactionRequest struct {
	Category string `json:"category" validate:"required"`
	Learn    *bool  `json:"learn"`
}

type summaryResponse struct {
	ID      string                     `json:"id"`
	Summary map[string]decimal.Decimal `json:"summary"`
	Month   int                        `json:"month"`
	Year    int                        `json:"year"`
	Total   decimal.Decimal            `json:"total"`
}

func toStatementResponse(st model.Statement) statementResponse {
	resp := statementResponse{
		ID:           st.ID,
		Filename:     st.Filename,
		Month:        st.Month,
		Year:         st.Year,
		UploadedAt:   st.UploadedAt,
		Transactions: make([]transactionResponse, 0, len(st.Transactions)),
	}
	for _, txn := range st.Transactions {
		resp.Transactions = append(resp.Transactions, transactionResponse{
			ID:          txn.ID,
			PostDate:    txn.PostDate.Format("2006-01-02"),
			InvDate:     txn.InvDate.Format("2006-01-02"),
			Description: txn.Description,
			Amount:      txn.Amount,
			IsCredit:    txn.IsCredit,
			Category:    txn.Category,
		})
	}
	return resp
}

func toSummaryResponse(s report.Summary) summaryResponse {
	return summaryResponse{
		ID:      s.ID,
		Month:   s.Month,
		Year:    s.Year,
		Summary: s.Totals,
		Total:   s.Total,
	}
}

func (s *Server) listStatements(c echo.Context) error {
	statements, err := s.store.ListStatements(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to list statements")
	}

	responses := make([]statementResponse, 0, len(statements))
	for _, st := range statements {
		responses = append(responses, toStatementResponse(st))
	}
	return c.JSON(http.StatusOK, map[string]any{"statements": responses})
}

func (s *Server) getStatement(c echo.Context) error {
	st, err := s.store.GetStatement(c.Request().Context(), c.Param("id"))
	if errors.Is(err, common.ErrNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "statement not found")
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to load statement")
	}
	return c.JSON(http.StatusOK, toStatementResponse(*st))
}

func (s *Server) uploadStatement(c echo.Context) error {
	file, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "missing file upload")
	}

	// The ingest pipeline works off a file path and the original filename
	// carries the advisory month/year label, so stage the upload on disk
	// under its own name.
	dir, err := os.MkdirTemp("", "cardledger-upload-")
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to stage upload")
	}
	defer func() { _ = os.RemoveAll(dir) }()

	path := filepath.Join(dir, filepath.Base(file.Filename))
	if err := saveUpload(file, path); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to stage upload")
	}

	st, err := s.importer.ImportFile(c.Request().Context(), path)
	if err != nil {
		if errors.Is(err, common.ErrNoTransactions) || errors.Is(err, common.ErrEncryptedDocument) {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to process statement")
	}

	return c.JSON(http.StatusCreated, map[string]any{
		"id":       st.ID,
		"filename": st.Filename,
		"month":    st.Month,
		"year":     st.Year,
	})
}

func (s *Server) updateTransaction(c echo.Context) error {
	var req updateTransactionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "category is required")
	}

	ctx := c.Request().Context()
	txn, err := s.store.GetTransaction(ctx, c.Param("id"))
	if errors.Is(err, common.ErrNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "transaction not found")
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to load transaction")
	}

	if err := s.store.UpdateTransactionCategory(ctx, txn.ID, req.Category); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to update transaction")
	}

	// Corrections feed the engine unless the caller opts out.
	if req.Learn == nil || *req.Learn {
		if err := s.engine.Learn(ctx, txn.Description, req.Category); err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, "failed to record correction")
		}
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "transaction updated"})
}

func (s *Server) summary(c echo.Context) error {
	ctx := c.Request().Context()

	if id := c.QueryParam("statement_id"); id != "" {
		st, err := s.store.GetStatement(ctx, id)
		if errors.Is(err, common.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "statement not found")
		}
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, "failed to load statement")
		}
		return c.JSON(http.StatusOK, toSummaryResponse(report.Summarize(*st)))
	}

	statements, err := s.store.ListStatements(ctx)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to list statements")
	}

	month, err := intQueryParam(c, "month")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "month must be an integer")
	}
	year, err := intQueryParam(c, "year")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "year must be an integer")
	}

	summaries := report.Compare(report.FilterByPeriod(statements, month, year))
	responses := make([]summaryResponse, 0, len(summaries))
	for _, sum := range summaries {
		responses = append(responses, toSummaryResponse(sum))
	}
	return c.JSON(http.StatusOK, map[string]any{"summaries": responses})
}

func (s *Server) compare(c echo.Context) error {
	ids := c.QueryParams()["statement_ids"]
	if len(ids) == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "statement_ids is required")
	}

	ctx := c.Request().Context()
	statements := make([]model.Statement, 0, len(ids))
	for _, id := range ids {
		st, err := s.store.GetStatement(ctx, id)
		if errors.Is(err, common.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "statement "+id+" not found")
		}
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, "failed to load statement")
		}
		statements = append(statements, *st)
	}

	summaries := report.Compare(statements)
	responses := make([]summaryResponse, 0, len(summaries))
	for _, sum := range summaries {
		responses = append(responses, toSummaryResponse(sum))
	}
	return c.JSON(http.StatusOK, map[string]any{"comparison": responses})
}

func saveUpload(file *multipart.FileHeader, path string) error {
	src, err := file.Open()
	if err != nil {
		return err
	}
	defer func() { _ = src.Close() }()

	dst, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() { _ = dst.Close() }()

	_, err = io.Copy(dst, src)
	return err
}

func intQueryParam(c echo.Context, name string) (int, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return 0, nil
	}
	return strconv.Atoi(raw)
}
