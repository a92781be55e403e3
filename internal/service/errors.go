package service

import (
	"errors"
)

const (
	BadRequest          = 400
	NotFound            = 404
	InternalServerError = 500
)

var (
	ErrParamInvalid     = errors.New("参数错误")
	ErrNoData           = errors.New("暂无笔记数据")
	ErrCategoryNotFound = errors.New("类目不存在")
	UnExpectedError     = errors.New("系统异常，请稍后重试")
)

var ErrorMap = map[error]int{
	ErrParamInvalid:     BadRequest,
	ErrNoData:           NotFound,
	ErrCategoryNotFound: NotFound,
	UnExpectedError:     InternalServerError,
}
