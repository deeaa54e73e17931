// Package errors 定义跨层共享的业务哨兵错误。
// 仓储层返回、服务层透传、HTTP 层用 errors.Is 分派状态码。
package errors

import "errors"

// ErrOptimisticLock 乐观锁冲突：版本号已被并发更新推进，调用方应重读后重试
var ErrOptimisticLock = errors.New("该记录已被其他人修改，请刷新后重试")
