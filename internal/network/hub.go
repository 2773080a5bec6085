package network

import (
	"sync"

	"github.com/google/uuid"
	"github.com/iiroka/netquake2-sub002/internal/core/types"
	"github.com/iiroka/netquake2-sub002/pkg/api"
	"github.com/iiroka/netquake2-sub002/pkg/logger"
)

// subscriberBuffer - сколько ответов может ждать медленный клиент.
const subscriberBuffer = 100

type subscriber struct {
	ch     chan api.ServerResponse
	entity types.EntityID // NilEntityID у зрителей
}

// Broadcaster занимается только рассылкой сообщений подписчикам.
// Подписчик получает UUID сессии при подключении и позже может
// привязаться к сущности игрока.
type Broadcaster struct {
	mu          sync.RWMutex
	subscribers map[string]*subscriber
}

func NewBroadcaster() *Broadcaster {
	return &Broadcaster{
		subscribers: make(map[string]*subscriber),
	}
}

// Register создает личный канал нового подписчика (зрителя) и его сессию.
func (b *Broadcaster) Register() (string, <-chan api.ServerResponse) {
	b.mu.Lock()
	defer b.mu.Unlock()

	session := uuid.NewString()
	ch := make(chan api.ServerResponse, subscriberBuffer)
	b.subscribers[session] = &subscriber{ch: ch}
	return session, ch
}

// Bind привязывает сессию к сущности игрока.
func (b *Broadcaster) Bind(session string, entity types.EntityID) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	sub, ok := b.subscribers[session]
	if !ok {
		return false
	}
	sub.entity = entity
	return true
}

// Unregister удаляет подписчика и закрывает его канал.
func (b *Broadcaster) Unregister(session string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if sub, ok := b.subscribers[session]; ok {
		close(sub.ch)
		delete(b.subscribers, session)
	}
}

// SendTo отправляет сообщение конкретной сессии (Unicast).
func (b *Broadcaster) SendTo(session string, msg api.ServerResponse) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if sub, ok := b.subscribers[session]; ok {
		b.deliver(session, sub, msg)
	}
}

// Publish собирает ответ для каждого подписчика и рассылает без блокировки.
// build получает сущность подписчика (NilEntityID у зрителей).
func (b *Broadcaster) Publish(build func(entity types.EntityID) api.ServerResponse) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for session, sub := range b.subscribers {
		b.deliver(session, sub, build(sub.entity))
	}
}

func (b *Broadcaster) deliver(session string, sub *subscriber, msg api.ServerResponse) {
	select {
	case sub.ch <- msg:
	default:
		logger.Component("hub").WithField("session", session).Debug("Channel full, message dropped")
	}
}

// Entity возвращает сущность, к которой привязана сессия.
func (b *Broadcaster) Entity(session string) (types.EntityID, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	sub, ok := b.subscribers[session]
	if !ok {
		return types.NilEntityID, false
	}
	return sub.entity, true
}

// HasSubscriber проверяет, управляется ли сущность кем-то.
func (b *Broadcaster) HasSubscriber(entity types.EntityID) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for _, sub := range b.subscribers {
		if sub.entity == entity {
			return true
		}
	}
	return false
}

// SubscriberCount возвращает количество активных подписчиков.
func (b *Broadcaster) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subscribers)
}
