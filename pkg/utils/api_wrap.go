package utils

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

type APIResponse struct {
	Status  string      `json:"status"`
	Code    int         `json:"code"`
	Message string      `json:"message,omitempty"`
	TraceID string      `json:"trace_id,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func RespondSuccess(c *gin.Context, data interface{}, message string) {
	traceID := c.GetString("trace_id")
	c.JSON(http.StatusOK, APIResponse{
		Status:  "success",
		Code:    http.StatusOK,
		Message: message,
		TraceID: traceID,
		Data:    data,
	})
}

func RespondError(c *gin.Context, code int, message string) {
	traceID := c.GetString("trace_id")
	c.JSON(code, APIResponse{
		Status:  "error",
		Code:    code,
		Message: message,
		TraceID: traceID,
	})
}

// HandleServiceError translates service sentinels to HTTP responses. The
// messages are what the app renders, so they stay in Vietnamese.
func HandleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrPlanNotFound):
		RespondError(c, http.StatusNotFound, "Không tìm thấy lịch trình")
	case errors.Is(err, ErrTourNotFound):
		RespondError(c, http.StatusNotFound, "Không tìm thấy tour")
	case errors.Is(err, ErrBookingNotFound):
		RespondError(c, http.StatusNotFound, "Không tìm thấy đơn đặt tour")
	case errors.Is(err, ErrAccountNotFound):
		RespondError(c, http.StatusNotFound, "Tài khoản không tồn tại")
	case errors.Is(err, ErrShareLinkNotFound):
		RespondError(c, http.StatusNotFound, "Liên kết chia sẻ không tồn tại hoặc đã hết hạn")
	case errors.Is(err, ErrEmailAlreadyExists):
		RespondError(c, http.StatusConflict, "Email đã được đăng ký")
	case errors.Is(err, ErrInvalidCredentials):
		RespondError(c, http.StatusUnauthorized, "Email hoặc mật khẩu không đúng")
	case errors.Is(err, ErrInvalidInput):
		RespondError(c, http.StatusBadRequest, "Dữ liệu không hợp lệ")
	case errors.Is(err, ErrForbidden):
		RespondError(c, http.StatusForbidden, "Bạn không có quyền thực hiện thao tác này")
	case errors.Is(err, ErrTourSoldOut):
		RespondError(c, http.StatusConflict, "Tour đã hết chỗ")
	case errors.Is(err, ErrUnexpectedBehaviorOfAI):
		log.Printf("AI error: %v", err)
		RespondError(c, http.StatusBadGateway, "Hệ thống AI đang bận, vui lòng thử lại sau")
	case errors.Is(err, ErrDatabaseError):
		log.Printf("Database error: %v", err)
		RespondError(c, http.StatusInternalServerError, "Đã có lỗi xảy ra, vui lòng thử lại")
	default:
		log.Printf("Unknown error: %v", err)
		RespondError(c, http.StatusInternalServerError, "Đã có lỗi xảy ra, vui lòng thử lại")
	}
}
