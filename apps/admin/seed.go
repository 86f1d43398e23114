package main

import (
	"fmt"

	"github.com/thedigitalbhaiya/ans-sub000/core/admin"
	"github.com/thedigitalbhaiya/ans-sub000/core/student"
)

// seed loads the demo dataset the portal ships with: the Sharma siblings
// sharing one guardian phone, two more students, and one account per role.
func (cli *commandLine) seed() error {
	students := []student.Record{
		{AdmissionNo: "ANS/2025/37", Name: "Aarav Sharma", Phone: "9430646481", Class: "5", Section: "a", RollNo: 12, FatherName: "Rakesh Sharma", MotherName: "Sunita Sharma"},
		{AdmissionNo: "ANS/2025/41", Name: "Ishita Sharma", Phone: "9430646481", Class: "3", Section: "a", RollNo: 7, FatherName: "Rakesh Sharma", MotherName: "Sunita Sharma"},
		{AdmissionNo: "ANS/2025/12", Name: "Rohan Verma", Phone: "9876501234", Class: "5", Section: "a", RollNo: 3, FatherName: "Anil Verma", MotherName: "Kavita Verma"},
		{AdmissionNo: "ANS/2024/89", Name: "Priya Singh", Phone: "9123456780", Class: "8", Section: "b", RollNo: 21, FatherName: "Vijay Singh", MotherName: "Rekha Singh"},
	}
	for _, rec := range students {
		if _, err := cli.studentRepo.CreateRecord(rec); err != nil {
			return err
		}
		fmt.Printf("admitted %s (%s)\n", rec.Name, rec.AdmissionNo)
	}

	admins := []admin.NewAccount{
		{Username: "principal", Password: "123", PasswordConfirm: "123", Name: "Principal", Role: admin.RoleSuperAdmin, Phone: "8709605412"},
		{Username: "mkumari", Password: "teach@1", PasswordConfirm: "teach@1", Name: "Meena Kumari", Role: admin.RoleTeacher, AssignedClass: "5", AssignedSection: "a", Phone: "9801234567"},
		{Username: "office1", Password: "staff@1", PasswordConfirm: "staff@1", Name: "Sanjay Gupta", Role: admin.RoleStaff, Phone: "9801112223"},
	}
	for _, na := range admins {
		if _, err := cli.adminSvc.GetByPhoneOrUsername(na.Username); err == nil {
			fmt.Printf("account %q already exists, skipping\n", na.Username)
			continue
		} else if err != admin.ErrNotFound {
			return err
		}
		acct, err := cli.adminSvc.Create(na)
		if err != nil {
			return err
		}
		fmt.Printf("created %s account %q\n", acct.Role, acct.Username)
	}
	return nil
}
