package page

import "exam-hall/biz/application/dto/basic"

func ParsePageOpt(p *basic.PaginationOptions) (page int64, limit int64) {
	page = int64(1)
	limit = int64(10)

	if p != nil {
		if p.Page != nil && *p.Page > 0 {
			page = *p.Page
		}
		if p.Limit != nil && *p.Limit > 0 {
			limit = *p.Limit
		}
	}
	return page, limit
}
