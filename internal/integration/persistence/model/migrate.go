package model

// All returns every model managed by auto-migration, in dependency order.
func All() []interface{} {
	return []interface{}{
		&UserModel{},
		&RefreshTokenModel{},
		&CategoryModel{},
		&TransactionModel{},
		&BudgetModel{},
		&GoalModel{},
		&GoalContributionModel{},
	}
}
