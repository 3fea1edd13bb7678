package eventbus

type TemplateEventType string

const (
	TemplateEventAdded   TemplateEventType = "TemplateAdded"
	TemplateEventRemoved TemplateEventType = "TemplateRemoved"
	TemplateEventUpdated TemplateEventType = "TemplateUpdated"
)

type TemplateEvent struct {
	Type       TemplateEventType
	TemplateID string
	Name       string
}

type TemplateEventHandler = Handler[TemplateEvent]
type TemplateEventBus = Bus[TemplateEventType, TemplateEvent]

func NewTemplateEventBus() *TemplateEventBus {
	return NewBus[TemplateEventType, TemplateEvent]()
}
