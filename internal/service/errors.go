package service

import (
	"errors"
	"fmt"
)

const (
	BadRequest          = 400
	Unauthorized        = 401
	Forbidden           = 403
	NotFound            = 404
	InternalServerError = 500
	ServiceUnavailable  = 503
)

var (
	ErrParamInvalid      = errors.New("参数错误")
	ErrPostTextEmpty     = errors.New("帖子内容不能为空")
	ErrCommentTextEmpty  = errors.New("评论内容不能为空")
	ErrGroupSlugExist    = errors.New("分组标识已存在")
	ErrUserExist         = errors.New("用户已存在")
	ErrFileNotSupported  = errors.New("不支持的文件类型")
	ErrUnauthorized      = errors.New("未登录")
	ErrPasswordIncorrect = errors.New("用户名或密码错误")
	ErrForbidden         = errors.New("权限不足")
	ErrPostNotFound      = errors.New("帖子不存在")
	ErrGroupNotFound     = errors.New("分组不存在")
	ErrUserNotFound      = errors.New("用户不存在")
	ErrMediaNotFound     = errors.New("图片不存在或已过期")
	ErrSearchUnavailable = errors.New("搜索服务未启用")
	ErrMediaUnavailable  = errors.New("图片服务未启用")
	ErrStoreUnavailable  = errors.New("存储服务不可用")
	UnExpectedError      = errors.New("系统异常，请稍后重试")
)

var ErrorMap = map[error]int{
	ErrParamInvalid:      BadRequest,
	ErrPostTextEmpty:     BadRequest,
	ErrCommentTextEmpty:  BadRequest,
	ErrGroupSlugExist:    BadRequest,
	ErrUserExist:         BadRequest,
	ErrFileNotSupported:  BadRequest,
	ErrUnauthorized:      Unauthorized,
	ErrPasswordIncorrect: Unauthorized,
	ErrForbidden:         Forbidden,
	ErrPostNotFound:      NotFound,
	ErrGroupNotFound:     NotFound,
	ErrUserNotFound:      NotFound,
	ErrMediaNotFound:     NotFound,
	ErrSearchUnavailable: ServiceUnavailable,
	ErrMediaUnavailable:  ServiceUnavailable,
	ErrStoreUnavailable:  InternalServerError,
	UnExpectedError:      InternalServerError,
}

// CodeOf 解析错误码，支持被包装的哨兵错误
func CodeOf(err error) (code int, sentinel error, ok bool) {
	if err == nil {
		return 0, nil, false
	}
	if code, ok = ErrorMap[err]; ok {
		return code, err, true
	}
	for e, c := range ErrorMap {
		if errors.Is(err, e) {
			return c, e, true
		}
	}
	return InternalServerError, nil, false
}

// storeErr 包装底层存储错误
func storeErr(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
}
