package container

import "container/heap"

// item 优先队列的单个元素
type item[T any] struct {
	Value    T       // 元素的值
	Priority float64 // 优先级，越小越优先
	index    int     // 在堆中的下标，由heap.Interface维护
}

// priorityQueue 实现heap.Interface的内部存储
type priorityQueue[T any] []*item[T]

func (pq priorityQueue[T]) Len() int { return len(pq) }

// 小顶堆：Pop返回优先级数值最小的元素
func (pq priorityQueue[T]) Less(i, j int) bool {
	return pq[i].Priority < pq[j].Priority
}

func (pq priorityQueue[T]) Swap(i, j int) {
	pq[i], pq[j] = pq[j], pq[i]
	pq[i].index = i
	pq[j].index = j
}

func (pq *priorityQueue[T]) Push(x any) {
	n := len(*pq)
	item := x.(*item[T])
	item.index = n
	*pq = append(*pq, item)
}

func (pq *priorityQueue[T]) Pop() any {
	old := *pq
	n := len(old)
	item := old[n-1]
	old[n-1] = nil // 避免内存泄漏
	item.index = -1
	*pq = old[0 : n-1]
	return item
}

// PriorityQueue 小顶堆优先队列
// 功能：按float64优先级组织任意类型的元素，数值最小者先出队
type PriorityQueue[T any] struct {
	queue priorityQueue[T]
}

// NewPriorityQueue 创建优先队列
func NewPriorityQueue[T any]() *PriorityQueue[T] {
	return &PriorityQueue[T]{queue: make(priorityQueue[T], 0)}
}

// Len 当前队列长度
func (q *PriorityQueue[T]) Len() int {
	return len(q.queue)
}

// HeapPush 入队并维护堆序
// 参数：value-元素值，priority-优先级（越小越优先）
func (q *PriorityQueue[T]) HeapPush(value T, priority float64) {
	heap.Push(&q.queue, &item[T]{
		Value:    value,
		Priority: priority,
	})
}

// HeapPop 弹出优先级数值最小的元素
// 返回：元素值与其优先级
func (q *PriorityQueue[T]) HeapPop() (value T, priority float64) {
	item := heap.Pop(&q.queue).(*item[T])
	return item.Value, item.Priority
}
