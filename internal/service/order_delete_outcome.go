package service

import (
	"fmt"

	"github.com/dujiao-next/cardshop-admin/internal/constants"
)

// DeleteValidationReason 删除请求参数校验失败原因
type DeleteValidationReason string

const (
	ReasonNothingSelected DeleteValidationReason = "nothing_selected"
	ReasonBatchTooLarge   DeleteValidationReason = "batch_too_large"
)

// OrderDeleteOutcome 批量删除订单的结果，只能是以下几种之一：
// OrdersDeleted / OrdersRejected / DeleteValidationFailed / DeleteUnauthorized / DeleteInfraFailed
type OrderDeleteOutcome interface {
	Success() bool
	Message() string
	orderDeleteOutcome()
}

// OrdersDeleted 至少删除一笔，或所有 ID 均不存在
type OrdersDeleted struct {
	Count         int64
	Skipped       []string
	NotFound      []string
	ReleasedCards int64
}

// OrdersRejected 所选订单均因状态受保护而未删除
type OrdersRejected struct {
	Skipped  []string
	NotFound []string
}

// DeleteValidationFailed 参数校验失败，未访问存储
type DeleteValidationFailed struct {
	Reason DeleteValidationReason
}

// DeleteUnauthorized 非管理员调用
type DeleteUnauthorized struct{}

// DeleteInfraFailed 存储故障，事务已回滚
type DeleteInfraFailed struct {
	Err error
}

func (OrdersDeleted) orderDeleteOutcome()          {}
func (OrdersRejected) orderDeleteOutcome()         {}
func (DeleteValidationFailed) orderDeleteOutcome() {}
func (DeleteUnauthorized) orderDeleteOutcome()     {}
func (DeleteInfraFailed) orderDeleteOutcome()      {}

func (OrdersDeleted) Success() bool          { return true }
func (OrdersRejected) Success() bool         { return false }
func (DeleteValidationFailed) Success() bool { return false }
func (DeleteUnauthorized) Success() bool     { return false }
func (DeleteInfraFailed) Success() bool      { return false }

func (o OrdersDeleted) Message() string {
	if len(o.Skipped) > 0 {
		return fmt.Sprintf("已删除 %d 笔订单（跳过 %d 笔不可删除订单）", o.Count, len(o.Skipped))
	}
	return fmt.Sprintf("已删除 %d 笔订单", o.Count)
}

func (OrdersRejected) Message() string {
	return "所选订单均不可删除（已支付/已完成/退款相关等状态将被保护）"
}

func (o DeleteValidationFailed) Message() string {
	switch o.Reason {
	case ReasonBatchTooLarge:
		return fmt.Sprintf("单次最多删除 %d 笔订单", constants.AdminBatchLimit)
	default:
		return "未选择任何订单"
	}
}

func (DeleteUnauthorized) Message() string {
	return "需要管理员权限"
}

// Message 不暴露底层错误
func (DeleteInfraFailed) Message() string {
	return "删除订单失败，请稍后重试"
}
