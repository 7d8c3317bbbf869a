// Package events はドメインイベントの型と配信インターフェースを定義します。
package events

import (
	"context"
	"time"
)

// Type はイベント種別です。ルーティングキーとしても利用されます。
type Type string

const (
	TypeCompanyCreated    Type = "empresa.criada"
	TypeCompanyUpdated    Type = "empresa.atualizada"
	TypeCompanyDeleted    Type = "empresa.removida"
	TypeEmployeeHired     Type = "funcionario.contratado"
	TypeEmployeeUpdated   Type = "funcionario.atualizado"
	TypeEmployeeDismissed Type = "funcionario.demitido"
)

// Event はコミット済みの書き込みを通知するイベントです。
type Event struct {
	Type       Type      `json:"tipo"`
	CompanyID  int64     `json:"empresaId,omitempty"`
	EmployeeID int64     `json:"funcionarioId,omitempty"`
	OccurredAt time.Time `json:"ocorridoEm"`
}

// Publisher はイベントの配信先です。
// 配信はベストエフォートであり、失敗しても呼び出し元のユースケースは失敗しません。
type Publisher interface {
	Publish(ctx context.Context, e Event)
}

// Noop は何も配信しない Publisher です。
type Noop struct{}

// Publish は何もしません。
func (Noop) Publish(context.Context, Event) {}
