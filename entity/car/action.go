package car

// Action 车辆控制动作
// 功能：描述控制器对车辆的纵向控制决定
type Action struct {
	A float64 // 加速度（米/秒²）
}

// Update 更新车辆动作
// 功能：采用取最小的方式设置加速度，处理多个策略的冲突
// 参数：others-其他动作列表
// 说明：加速度取所有动作中的最小值，最保守的制动胜出
func (a *Action) Update(others ...Action) {
	for _, o := range others {
		if o.A < a.A {
			a.A = o.A
		}
	}
}
