package eventbus

type NotebookEventType string

const (
	NotebookEventSelectionChanged NotebookEventType = "SelectionChanged"
	NotebookEventReplaced         NotebookEventType = "Replaced"
)

// NotebookEvent 笔记本变化，变量上下文随之变化
type NotebookEvent struct {
	Type   NotebookEventType
	NoteID string // 当前选中的笔记，可能为空
}

type NotebookEventHandler = Handler[NotebookEvent]
type NotebookEventBus = Bus[NotebookEventType, NotebookEvent]

func NewNotebookEventBus() *NotebookEventBus {
	return NewBus[NotebookEventType, NotebookEvent]()
}
