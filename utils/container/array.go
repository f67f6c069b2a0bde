package container

// IIncrementalItem 延迟提交数组的元素接口
// 说明：元素需要跟踪自己在数组中的下标，换位删除时由数组回写
type IIncrementalItem interface {
	Index() int         // 获取元素的下标
	SetIndex(index int) // 设置元素的下标
}

// IncrementalItemBase 延迟提交数组元素的基类
// 说明：作为嵌入字段使用，提供IIncrementalItem的默认实现
type IncrementalItemBase struct {
	index int // 元素在数组中的下标
}

func (b *IncrementalItemBase) Index() int {
	return b.index
}

func (b *IncrementalItemBase) SetIndex(index int) {
	b.index = index
}

// IncrementalArray 延迟提交的数组
// 功能：累积Add与Remove请求，在Prepare时一次性应用
// 说明：更新阶段遍历Data()期间的增删不会改变正在遍历的切片；
// 删除采用换位填充，不保证元素顺序
type IncrementalArray[T IIncrementalItem] struct {
	data   []T // 已提交的元素
	add    []T // 待添加的元素
	remove []T // 待删除的元素
}

// NewIncrementalArray 创建延迟提交数组
func NewIncrementalArray[T IIncrementalItem]() *IncrementalArray[T] {
	return &IncrementalArray[T]{
		data:   make([]T, 0),
		add:    make([]T, 0),
		remove: make([]T, 0),
	}
}

// Len 已提交的元素个数
func (a *IncrementalArray[T]) Len() int {
	return len(a.data)
}

// Data 已提交的元素切片
func (a *IncrementalArray[T]) Data() []T {
	return a.data
}

// Add 添加元素，下次Prepare时生效
func (a *IncrementalArray[T]) Add(value T) {
	a.add = append(a.add, value)
}

// Remove 删除元素，下次Prepare时生效
func (a *IncrementalArray[T]) Remove(value T) {
	a.remove = append(a.remove, value)
}

// Prepare 应用累积的增删请求
// 算法说明：
// 1. 添加不少于删除时，新元素先覆盖被删除元素的位置，剩余追加到末尾
// 2. 删除较多时，先用新元素回填，再从末尾搬移元素补上空位并截断
// 3. 被移动元素的下标同步回写
func (a *IncrementalArray[T]) Prepare() {
	if len(a.add) >= len(a.remove) {
		for i, x := range a.remove {
			ind := x.Index()
			a.data[ind] = a.add[i]
			a.data[ind].SetIndex(ind)
		}
		l1 := len(a.remove)
		l2 := len(a.add) - l1
		for i := 0; i < l2; i++ {
			a.add[l1+i].SetIndex(len(a.data) + i)
		}
		a.data = append(a.data, a.add[len(a.remove):]...)
	} else {
		for i, x := range a.add {
			ind := a.remove[i].Index()
			a.data[ind] = x
			a.data[ind].SetIndex(ind)
		}
		l1 := len(a.add)
		l2 := len(a.remove) - l1
		l3 := len(a.data) - l2
		for i := 0; i < l2; i++ {
			// 从末尾拿一项填过来
			ind := a.remove[l1+i].Index()
			a.data[ind] = a.data[l3+i]
			a.data[ind].SetIndex(ind)
		}
		a.data = a.data[:l3]
	}

	a.add = []T{}
	a.remove = []T{}
}
