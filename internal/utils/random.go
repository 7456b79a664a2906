package utils

import (
	"fmt"
	"math/rand"

	"github.com/mozillazg/go-pinyin"
	"github.com/workhive-dev/hr-admin/backend/internal/domain"
)

var commonSurnames = []string{
	"王", "李", "张", "刘", "陈", "杨", "赵", "黄", "周", "吴",
	"徐", "孙", "胡", "朱", "高", "林", "何", "郭", "马", "罗",
}
var commonNameCharacters = []string{
	"伟", "强", "芳", "敏", "静", "丽", "刚", "杰", "娟", "勇",
	"艳", "涛", "明", "军", "磊", "洋", "霞", "飞", "玲", "超",
	"华", "平", "辉", "梅", "鑫", "龙", "鹏", "玉", "斌", "庆",
	"建", "丹", "彬", "凤", "旭", "宁", "乐", "成", "欣", "雪",
}

var jobTitles = []string{
	"Software Engineer", "Account Manager", "HR Specialist", "Designer",
	"Support Agent", "Sales Representative", "Data Analyst", "Office Manager",
}

func GenerateRandomChineseName() string {
	surname := commonSurnames[rand.Intn(len(commonSurnames))]
	nameLength := rand.Intn(2) + 1
	name := ""

	for i := 0; i < nameLength; i++ {
		name += commonNameCharacters[rand.Intn(len(commonNameCharacters))]
	}
	return surname + name
}

var digits = "0123456789"

func GenerateUsernameFromChineseName(chineseName string) string {
	pinyinArray := pinyin.LazyConvert(chineseName, nil)
	username := ""

	for _, p := range pinyinArray {
		length := rand.Intn(len(p)) + 1
		username += p[:length]
	}

	digitsLength := rand.Intn(3) + 1
	for i := 0; i < digitsLength; i++ {
		username += string(digits[rand.Intn(len(digits))])
	}

	return username
}

func GenerateRandomEmployee(companyID int64, emailDomainName string) *domain.Employee {
	fullName := GenerateRandomChineseName()
	username := GenerateUsernameFromChineseName(fullName)

	return &domain.Employee{
		CompanyID: companyID,
		FullName:  fullName,
		Username:  username,
		Email:     username + "@" + emailDomainName,
		JobTitle:  jobTitles[rand.Intn(len(jobTitles))],
	}
}

// GenerateRandomShiftSet returns a day/evening/night trio with the day shift
// marked default, which matches what a fresh company sets up first.
func GenerateRandomShiftSet(companyID int64) []*domain.Shift {
	weekdays := []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday"}
	allDays := append(weekdays, "Saturday", "Sunday")

	return []*domain.Shift{
		{
			CompanyID:   companyID,
			ShiftName:   "Day",
			StartTime:   "09:00:00",
			EndTime:     "17:00:00",
			WorkingDays: weekdays,
			IsDefault:   true,
		},
		{
			CompanyID:   companyID,
			ShiftName:   "Evening",
			StartTime:   "16:00:00",
			EndTime:     "23:59:00",
			WorkingDays: allDays,
		},
		{
			CompanyID:   companyID,
			ShiftName:   "Night",
			StartTime:   "00:00:00",
			EndTime:     "08:00:00",
			WorkingDays: allDays,
		},
	}
}

func GenerateRandomRotation(companyID int64, shiftIDs []int64) *domain.ShiftRotation {
	frequencies := []string{"Daily", "Weekly", "Monthly"}

	return &domain.ShiftRotation{
		CompanyID:            companyID,
		RotationName:         fmt.Sprintf("Rotation %02d", rand.Intn(100)),
		RotationFrequency:    frequencies[rand.Intn(len(frequencies))],
		ReplaceExistingShift: rand.Intn(2) == 0,
		ShiftsInSequence:     shiftIDs,
	}
}

func GenerateRandomExpense(companyID int64, createdBy int64) *domain.Expense {
	itemCount := rand.Intn(3) + 1
	items := make([]domain.ExpenseItem, 0, itemCount)

	for i := 0; i < itemCount; i++ {
		quantity := float64(rand.Intn(5) + 1)
		unitPrice := float64(rand.Intn(20000)) / 100
		items = append(items, domain.ExpenseItem{
			ItemName:  fmt.Sprintf("Expense Item %d", i+1),
			Quantity:  quantity,
			Unit:      "Pcs",
			UnitPrice: unitPrice,
			Amount:    quantity * unitPrice,
		})
	}

	expense := &domain.Expense{
		CompanyID:       companyID,
		Currency:        "USD",
		CalculateTax:    "After Discount",
		Terms:           "Thank you for your business.",
		Discount:        float64(rand.Intn(20)),
		DiscountType:    "%",
		RequireApproval: true,
		Status:          domain.ExpensePending,
		CreatedBy:       createdBy,
		Items:           items,
	}
	expense.ComputeTotals()

	return expense
}
