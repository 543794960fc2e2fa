package handler

import (
	"errors"
	"reflect"
	"strconv"
	"strings"

	"nexthire/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// Bind 解析 JSON body 並以 echo 的 Validator 驗證；失敗時回傳 ValidationError
func Bind(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return &service.Error{Kind: service.KindValidation, Message: "invalid request body", Err: err}
	}
	if err := c.Validate(req); err != nil {
		return &service.Error{Kind: service.KindValidation, Message: validationMessage(req, err), Err: err}
	}
	return nil
}

// validationMessage 把 validator 的錯誤轉成以 JSON 欄位名稱描述的短訊息，例如 "email is required"
func validationMessage(req any, err error) string {
	var ves validator.ValidationErrors
	if !errors.As(err, &ves) || len(ves) == 0 {
		return "invalid request body"
	}
	msgs := make([]string, 0, len(ves))
	for _, fe := range ves {
		name := jsonName(req, fe.StructField())
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, name+" is required")
		case "email":
			msgs = append(msgs, name+" must be a valid email")
		default:
			msgs = append(msgs, name+" is invalid")
		}
	}
	return strings.Join(msgs, "; ")
}

func jsonName(req any, field string) string {
	t := reflect.TypeOf(req)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t != nil && t.Kind() == reflect.Struct {
		if sf, ok := t.FieldByName(field); ok {
			if name, _, _ := strings.Cut(sf.Tag.Get("json"), ","); name != "" && name != "-" {
				return name
			}
		}
	}
	if field == "" {
		return "field"
	}
	return strings.ToLower(field[:1]) + field[1:]
}

// PageParams 讀取 page 與 per_page，缺省時使用預設值
func PageParams(c echo.Context) (page, perPage int, err error) {
	page, err = intQuery(c, "page", service.DefaultPage)
	if err != nil {
		return 0, 0, err
	}
	perPage, err = intQuery(c, "per_page", service.DefaultPerPage)
	if err != nil {
		return 0, 0, err
	}
	return page, perPage, nil
}

func intQuery(c echo.Context, name string, def int) (int, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &service.Error{Kind: service.KindValidation, Message: name + " must be a positive integer", Err: err}
	}
	return v, nil
}
